package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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

// ContentHandler handles posting and feedback on content items
type ContentHandler struct {
	content ports.ContentRepository
	graph   *services.CircleGraph
	scorer  *services.CredibilityScorer
	errs    *pkgerrors.ErrorHandler
	logger  *zap.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(content ports.ContentRepository, graph *services.CircleGraph, scorer *services.CredibilityScorer, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{content: content, graph: graph, scorer: scorer, errs: errs, logger: logger}
}

// CreateContentRequest represents the request body for a new post. ImageURL
// is only honored for recommendations.
type CreateContentRequest struct {
	Text       string `json:"text" validate:"required,max=5000"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url,max=2048"`
	Visibility string `json:"visibility" validate:"required,oneof=inner outer"`
	Anonymous  bool   `json:"anonymous"`
}

// CreateContentResponse returns the id of the stored item
type CreateContentResponse struct {
	ID string `json:"id"`
}

// CreateRecommendation handles POST /recommendations
func (h *ContentHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, valueobjects.KindRecommendation)
}

// CreateQuestion handles POST /questions
func (h *ContentHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, valueobjects.KindQuestion)
}

func (h *ContentHandler) create(w http.ResponseWriter, r *http.Request, kind valueobjects.ContentKind) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	var req CreateContentRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	visibility, err := valueobjects.ParseVisibility(req.Visibility)
	if err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("visibility must be inner or outer"))
		return
	}

	// The author's score is stamped onto the item at post time so the item
	// keeps a record of the standing it was published under
	snapshot, err := h.scorer.Score(r.Context(), userCtx.UserID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	var item *entities.ContentItem
	switch kind {
	case valueobjects.KindRecommendation:
		item, err = entities.NewRecommendation(uuid.New().String(), userCtx.UserID, req.Text, req.ImageURL, visibility, req.Anonymous, snapshot)
	default:
		item, err = entities.NewQuestion(uuid.New().String(), userCtx.UserID, req.Text, visibility, req.Anonymous, snapshot)
	}
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	if err := h.content.CreateContent(r.Context(), item); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("content created",
		zap.String("content_id", item.ID()),
		zap.String("kind", item.Kind().String()),
		zap.String("visibility", item.Visibility().String()),
		zap.Bool("anonymous", item.Anonymous()),
	)
	common.RespondJSON(w, http.StatusCreated, CreateContentResponse{ID: item.ID()})
}

// Like handles POST /content/{contentID}/like
func (h *ContentHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.feedback(w, r, valueobjects.FeedbackLike)
}

// Reply handles POST /content/{contentID}/reply
func (h *ContentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	h.feedback(w, r, valueobjects.FeedbackReply)
}

func (h *ContentHandler) feedback(w http.ResponseWriter, r *http.Request, kind valueobjects.FeedbackKind) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	contentID := chi.URLParam(r, "contentID")
	item, err := h.content.GetContent(r.Context(), contentID)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	// Items outside the viewer's audience are indistinguishable from
	// missing ones
	visible, err := h.graph.IsVisible(r.Context(), userCtx.UserID, item.AuthorID(), item.Visibility())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	if !visible {
		h.errs.Handle(w, r, pkgerrors.NewNotFoundError("content"))
		return
	}

	if err := h.content.IncrementFeedback(r.Context(), contentID, kind); err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
