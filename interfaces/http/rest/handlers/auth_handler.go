package handlers

import (
	"math"
	"net/http"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/application/services"
	"crcl-backend/domain/core/entities"
	"crcl-backend/pkg/auth"
	"crcl-backend/pkg/common"
	pkgerrors "crcl-backend/pkg/errors"
	"crcl-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// AuthHandler handles signup, login and the current-user endpoint
type AuthHandler struct {
	identity ports.IdentityProvider
	users    ports.UserRepository
	circles  ports.CircleRepository
	scorer   *services.CredibilityScorer
	errs     *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	identity ports.IdentityProvider,
	users ports.UserRepository,
	circles ports.CircleRepository,
	scorer *services.CredibilityScorer,
	errs *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		users:    users,
		circles:  circles,
		scorer:   scorer,
		errs:     errs,
		logger:   logger,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Name      string   `json:"name" validate:"required,min=1,max=80"`
	Interests []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

// SignupResponse represents the response for signup
type SignupResponse struct {
	UserID string `json:"userId"`
}

// Signup handles POST /auth/signup. Credentials go to the identity
// provider; this service only creates the profile row and the two empty
// circles every new user starts with.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	userID, err := h.identity.CreateUser(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	user, err := entities.NewUser(userID, req.Name, req.Interests)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		h.logger.Error("profile creation failed after identity signup",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		h.errs.Handle(w, r, err)
		return
	}
	if err := h.circles.CreateCircles(r.Context(), userID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("user signed up", zap.String("user_id", userID))
	common.RespondJSON(w, http.StatusCreated, SignupResponse{UserID: userID})
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse represents the response for login
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	token, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// ProfileResponse is the current-user payload. Credibility is recomputed on
// read and rounded only here, at the presentation boundary.
type ProfileResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Interests   []string `json:"interests"`
	Credibility int      `json:"credibilityScore"`
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), userCtx.UserID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	score, err := h.scorer.Score(r.Context(), user.ID())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ProfileResponse{
		ID:          user.ID(),
		Name:        user.Name(),
		Interests:   user.Interests(),
		Credibility: int(math.Round(score)),
	})
}
