package services

import (
	"context"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	domainconfig "crcl-backend/domain/config"
	"crcl-backend/domain/core/entities"
	pkgerrors "crcl-backend/pkg/errors"
)

// CredibilityScorer derives a user's credibility score from current signal
// totals. The model is pull-based: every call recomputes from the stored
// totals rather than maintaining an incremental value, so the score can
// never drift. Callers composing a feed cache results per request.
type CredibilityScorer struct {
	users   ports.UserRepository
	content ports.ContentRepository
	trust   ports.TrustRepository
	graph   *CircleGraph
	cfg     *domainconfig.DomainConfig
	logger  *zap.Logger
}

// NewCredibilityScorer creates the scorer service
func NewCredibilityScorer(
	users ports.UserRepository,
	content ports.ContentRepository,
	trust ports.TrustRepository,
	graph *CircleGraph,
	cfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *CredibilityScorer {
	return &CredibilityScorer{
		users:   users,
		content: content,
		trust:   trust,
		graph:   graph,
		cfg:     cfg,
		logger:  logger,
	}
}

// Score computes the user's credibility in [0, MaxScore] as a weighted sum
// of capped, normalized signals: positive feedback received, reply
// engagement received, and manual trust edges pointing at the user.
func (s *CredibilityScorer) Score(ctx context.Context, userID string) (float64, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return 0, err
	}

	totals, err := s.content.SignalTotals(ctx, userID)
	if err != nil {
		return 0, err
	}

	edges, err := s.trust.ListTrustEdgesTo(ctx, userID)
	if err != nil {
		return 0, err
	}
	trustSum := 0.0
	for _, edge := range edges {
		trustSum += edge.Weight
	}

	raw := s.cfg.FeedbackWeight*normalize(float64(totals.PositiveFeedback), s.cfg.FeedbackCap) +
		s.cfg.EngagementWeight*normalize(float64(totals.Replies), s.cfg.EngagementCap) +
		s.cfg.TrustWeight*normalize(trustSum, s.cfg.TrustCap)

	return clamp(raw*s.cfg.MaxScore, 0, s.cfg.MaxScore), nil
}

// EffectiveCredibility evaluates an item's weight for a specific viewer:
// the author's score scaled by the circle-distance multiplier. A distance of
// none means the visibility invariant was violated upstream and the item
// should never have been a candidate, so it fails loudly instead of
// returning a value.
func (s *CredibilityScorer) EffectiveCredibility(ctx context.Context, item *entities.ContentItem, viewerID string) (float64, error) {
	distance, err := s.graph.CircleDistance(ctx, viewerID, item.AuthorID())
	if err != nil {
		return 0, err
	}

	multiplier, ok := s.cfg.DistanceMultiplier(distance)
	if !ok {
		s.logger.Error("content item reached scoring outside its audience",
			zap.String("alert", "data-integrity"),
			zap.String("item_id", item.ID()),
			zap.String("author_id", item.AuthorID()),
			zap.String("viewer_id", viewerID),
			zap.String("visibility", item.Visibility().String()),
		)
		return 0, pkgerrors.NewVisibilityViolationError("viewer is outside the item's audience")
	}

	score, err := s.Score(ctx, item.AuthorID())
	if err != nil {
		return 0, err
	}
	return score * multiplier, nil
}

// normalize caps a signal and scales it into [0, 1]
func normalize(value, limit float64) float64 {
	if value <= 0 {
		return 0
	}
	if value >= limit {
		return 1
	}
	return value / limit
}

// clamp bounds a value to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scoreCache memoizes per-author scores within a single request.
type scoreCache struct {
	scorer *CredibilityScorer
	scores map[string]float64
}

func newScoreCache(scorer *CredibilityScorer) *scoreCache {
	return &scoreCache{scorer: scorer, scores: make(map[string]float64)}
}

func (c *scoreCache) score(ctx context.Context, authorID string) (float64, error) {
	if score, ok := c.scores[authorID]; ok {
		return score, nil
	}
	score, err := c.scorer.Score(ctx, authorID)
	if err != nil {
		return 0, err
	}
	c.scores[authorID] = score
	return score, nil
}
