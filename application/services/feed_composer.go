package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	domainconfig "crcl-backend/domain/config"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// FeedFilter narrows a compose call
type FeedFilter struct {
	Visibility valueobjects.VisibilityFilter
	Kinds      []valueobjects.ContentKind // empty means all kinds
}

// FeedItem is the composed output payload for one content item. AuthorID is
// empty for anonymous items unless the viewer is the author.
type FeedItem struct {
	ID                   string                   `json:"id"`
	Kind                 valueobjects.ContentKind `json:"kind"`
	AuthorID             string                   `json:"authorId,omitempty"`
	Body                 string                   `json:"body"`
	ImageURL             string                   `json:"imageUrl,omitempty"`
	Visibility           valueobjects.Visibility  `json:"visibility"`
	Anonymous            bool                     `json:"anonymous"`
	CreatedAt            time.Time                `json:"createdAt"`
	Likes                int                      `json:"likes"`
	Replies              int                      `json:"replies"`
	EffectiveCredibility float64                  `json:"-"`
}

// FeedPage is one page of a composed feed
type FeedPage struct {
	Items      []FeedItem `json:"items"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// FeedComposer produces the ordered, deduplicated sequence of content items
// visible to a viewer. Each call is stateless given current graph and scorer
// state; pagination restarts from an opaque cursor.
type FeedComposer struct {
	users   ports.UserRepository
	content ports.ContentRepository
	graph   *CircleGraph
	scorer  *CredibilityScorer
	cfg     *domainconfig.DomainConfig
	logger  *zap.Logger
}

// NewFeedComposer creates the feed composer service
func NewFeedComposer(
	users ports.UserRepository,
	content ports.ContentRepository,
	graph *CircleGraph,
	scorer *CredibilityScorer,
	cfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *FeedComposer {
	return &FeedComposer{
		users:   users,
		content: content,
		graph:   graph,
		scorer:  scorer,
		cfg:     cfg,
		logger:  logger,
	}
}

// Compose returns one page of the viewer's feed. Ordering is total and
// deterministic: effective credibility descending, then createdAt
// descending, then id ascending. An empty page is not an error; an unknown
// viewer is NotFound; a malformed or dangling cursor is InvalidOperation.
func (c *FeedComposer) Compose(ctx context.Context, viewerID string, filter FeedFilter, limit int, cursorToken string) (FeedPage, error) {
	if _, err := c.users.GetUser(ctx, viewerID); err != nil {
		return FeedPage{}, err
	}

	cursor, ok := valueobjects.DecodeCursor(cursorToken)
	if !ok {
		return FeedPage{}, pkgerrors.NewInvalidOperationError("malformed feed cursor")
	}

	if limit <= 0 {
		limit = c.cfg.DefaultFeedLimit
	}
	if limit > c.cfg.MaxFeedLimit {
		limit = c.cfg.MaxFeedLimit
	}

	candidates, err := c.collectCandidates(ctx, viewerID, filter)
	if err != nil {
		return FeedPage{}, err
	}

	sortFeed(candidates)

	start := 0
	if !cursor.IsZero() {
		idx := indexOfCursor(candidates, cursor)
		if idx < 0 {
			return FeedPage{}, pkgerrors.NewInvalidOperationError("stale feed cursor")
		}
		start = idx + 1
	}

	end := start + limit
	if end > len(candidates) {
		end = len(candidates)
	}

	page := FeedPage{Items: make([]FeedItem, 0, end-start)}
	for _, ranked := range candidates[start:end] {
		page.Items = append(page.Items, c.present(ranked, viewerID))
	}

	if end < len(candidates) && len(page.Items) > 0 {
		last := page.Items[len(page.Items)-1]
		page.NextCursor = valueobjects.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}

	return page, nil
}

// rankedItem pairs an item with its per-viewer weight for ordering
type rankedItem struct {
	item *entities.ContentItem
	eff  float64
}

// collectCandidates lists, filters and scores everything the viewer may see.
// Scores and distances are cached per author for the duration of the call.
func (c *FeedComposer) collectCandidates(ctx context.Context, viewerID string, filter FeedFilter) ([]rankedItem, error) {
	items, err := c.content.ListContent(ctx, ports.ContentFilter{Kinds: filter.Kinds})
	if err != nil {
		return nil, err
	}

	scores := newScoreCache(c.scorer)
	distances := make(map[string]valueobjects.CircleDistance)
	seen := make(map[string]bool, len(items))

	candidates := make([]rankedItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID()] {
			continue
		}
		seen[item.ID()] = true

		if !filter.Visibility.Matches(item.Visibility()) {
			continue
		}

		visible, err := c.graph.IsVisible(ctx, viewerID, item.AuthorID(), item.Visibility())
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}

		eff, err := c.effectiveCredibility(ctx, viewerID, item, scores, distances)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, rankedItem{item: item, eff: eff})
	}

	return candidates, nil
}

// effectiveCredibility mirrors CredibilityScorer.EffectiveCredibility with
// per-request caching of author scores and distances
func (c *FeedComposer) effectiveCredibility(
	ctx context.Context,
	viewerID string,
	item *entities.ContentItem,
	scores *scoreCache,
	distances map[string]valueobjects.CircleDistance,
) (float64, error) {
	distance, ok := distances[item.AuthorID()]
	if !ok {
		var err error
		distance, err = c.graph.CircleDistance(ctx, viewerID, item.AuthorID())
		if err != nil {
			return 0, err
		}
		distances[item.AuthorID()] = distance
	}

	multiplier, ok := c.cfg.DistanceMultiplier(distance)
	if !ok {
		// Cannot happen for an item that passed IsVisible; treat it exactly
		// like the scorer does if it ever does.
		c.logger.Error("visible item has no audience relation",
			zap.String("alert", "data-integrity"),
			zap.String("item_id", item.ID()),
			zap.String("viewer_id", viewerID),
		)
		return 0, pkgerrors.NewVisibilityViolationError("viewer is outside the item's audience")
	}

	score, err := scores.score(ctx, item.AuthorID())
	if err != nil {
		return 0, err
	}
	return score * multiplier, nil
}

// present builds the output payload, redacting the author of anonymous
// items for every viewer except the author
func (c *FeedComposer) present(ranked rankedItem, viewerID string) FeedItem {
	item := ranked.item

	authorID := item.AuthorID()
	if item.Anonymous() && viewerID != item.AuthorID() {
		authorID = ""
	}

	return FeedItem{
		ID:                   item.ID(),
		Kind:                 item.Kind(),
		AuthorID:             authorID,
		Body:                 item.Body(),
		ImageURL:             item.ImageURL(),
		Visibility:           item.Visibility(),
		Anonymous:            item.Anonymous(),
		CreatedAt:            item.CreatedAt(),
		Likes:                item.Likes(),
		Replies:              item.Replies(),
		EffectiveCredibility: ranked.eff,
	}
}

// sortFeed applies the total feed order in place
func sortFeed(items []rankedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].eff != items[j].eff {
			return items[i].eff > items[j].eff
		}
		ti, tj := items[i].item.CreatedAt(), items[j].item.CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].item.ID() < items[j].item.ID()
	})
}

// indexOfCursor locates the item a cursor points at in the ranked sequence
func indexOfCursor(items []rankedItem, cursor valueobjects.Cursor) int {
	for i, ranked := range items {
		if ranked.item.ID() == cursor.ID && ranked.item.CreatedAt().Equal(cursor.CreatedAt) {
			return i
		}
	}
	return -1
}
