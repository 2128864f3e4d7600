package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/pkg/auth"
	"crcl-backend/pkg/common"
	pkgerrors "crcl-backend/pkg/errors"
	"crcl-backend/pkg/utils"
)

// ProfileHandler handles profile updates
type ProfileHandler struct {
	users  ports.UserRepository
	errs   *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users ports.UserRepository, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, errs: errs, logger: logger}
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=80"`
	Interests []string `json:"interests" validate:"max=20,dive,max=50"`
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	var req UpdateProfileRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	// Run the update through the entity so interests are deduped the same
	// way signup dedupes them
	user, err := h.users.GetUser(r.Context(), userCtx.UserID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	if err := user.SetProfile(req.Name, req.Interests); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	if err := h.users.UpdateProfile(r.Context(), user.ID(), user.Name(), user.Interests()); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
