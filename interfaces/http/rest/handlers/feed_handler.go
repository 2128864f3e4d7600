package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"crcl-backend/application/services"
	"crcl-backend/domain/core/valueobjects"
	"crcl-backend/pkg/auth"
	"crcl-backend/pkg/common"
	pkgerrors "crcl-backend/pkg/errors"
)

// FeedHandler handles feed reads
type FeedHandler struct {
	composer *services.FeedComposer
	errs     *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(composer *services.FeedComposer, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{composer: composer, errs: errs, logger: logger}
}

// FeedItemResponse is one feed entry with the viewer-relative score rounded
// for display
type FeedItemResponse struct {
	services.FeedItem
	Credibility int `json:"credibility"`
}

// FeedResponse is one page of the viewer's feed
type FeedResponse struct {
	Items      []FeedItemResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

// Get handles GET /feed
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	query := r.URL.Query()

	visibility, err := valueobjects.ParseVisibilityFilter(query.Get("visibility"))
	if err != nil {
		h.errs.Handle(w, r, pkgerrors.NewValidationError("visibility must be inner, outer or both"))
		return
	}

	kinds, err := parseKinds(query.Get("kinds"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.errs.Handle(w, r, pkgerrors.NewValidationError("limit must be a positive integer"))
			return
		}
	}

	start := time.Now()
	page, err := h.composer.Compose(r.Context(), userCtx.UserID, services.FeedFilter{
		Visibility: visibility,
		Kinds:      kinds,
	}, limit, query.Get("cursor"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Debug("feed composed",
		zap.String("viewer_id", userCtx.UserID),
		zap.Int("items", len(page.Items)),
		zap.Duration("duration", time.Since(start)),
	)

	resp := FeedResponse{
		Items:      make([]FeedItemResponse, 0, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for _, item := range page.Items {
		resp.Items = append(resp.Items, FeedItemResponse{
			FeedItem:    item,
			Credibility: int(math.Round(item.EffectiveCredibility)),
		})
	}

	common.RespondJSON(w, http.StatusOK, resp)
}

// parseKinds parses the comma separated kinds query parameter
func parseKinds(raw string) ([]valueobjects.ContentKind, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	kinds := make([]valueobjects.ContentKind, 0, len(parts))
	for _, part := range parts {
		kind, err := valueobjects.ParseContentKind(strings.TrimSpace(part))
		if err != nil {
			return nil, pkgerrors.NewValidationError("kinds must be recommendation or question")
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
