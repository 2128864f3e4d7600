package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/application/services"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	"crcl-backend/pkg/auth"
	"crcl-backend/pkg/common"
	pkgerrors "crcl-backend/pkg/errors"
	"crcl-backend/pkg/utils"
)

// CircleHandler handles circle membership and trust mutations
type CircleHandler struct {
	graph  *services.CircleGraph
	users  ports.UserRepository
	trust  ports.TrustRepository
	errs   *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewCircleHandler creates a new circle handler
func NewCircleHandler(graph *services.CircleGraph, users ports.UserRepository, trust ports.TrustRepository, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *CircleHandler {
	return &CircleHandler{graph: graph, users: users, trust: trust, errs: errs, logger: logger}
}

// AddMember handles PUT /circles/{circleName}/members/{memberID}
func (h *CircleHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	name, err := valueobjects.ParseVisibility(chi.URLParam(r, "circleName"))
	if err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("circle name must be inner or outer"))
		return
	}
	memberID := chi.URLParam(r, "memberID")

	if err := h.graph.AddMember(r.Context(), userCtx.UserID, name, memberID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RemoveMember handles DELETE /circles/{circleName}/members/{memberID}
func (h *CircleHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	name, err := valueobjects.ParseVisibility(chi.URLParam(r, "circleName"))
	if err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("circle name must be inner or outer"))
		return
	}
	memberID := chi.URLParam(r, "memberID")

	if err := h.graph.RemoveMember(r.Context(), userCtx.UserID, name, memberID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetTrustRequest represents the request body for a trust assignment
type SetTrustRequest struct {
	Weight float64 `json:"weight" validate:"gte=0,lte=1"`
}

// SetTrust handles PUT /trust/{authorID}
func (h *CircleHandler) SetTrust(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	var req SetTrustRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	authorID := chi.URLParam(r, "authorID")
	if _, err := h.users.GetUser(r.Context(), authorID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	edge, err := entities.NewTrustEdge(userCtx.UserID, authorID, req.Weight)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	if err := h.trust.UpsertTrustEdge(r.Context(), edge); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("trust edge set",
		zap.String("viewer_id", userCtx.UserID),
		zap.String("author_id", authorID),
		zap.Float64("weight", req.Weight),
	)
	common.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
