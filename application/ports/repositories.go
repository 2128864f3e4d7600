// Package ports declares the contracts the engine consumes from its
// collaborators. The storage backend is managed elsewhere; everything here
// is assumed atomic at the single-row level and fail-fast on timeout, and
// the engine never retries.
package ports

import (
	"context"

	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
)

// UserRepository reads and writes profile rows
type UserRepository interface {
	// GetUser returns NotFound for an unknown id
	GetUser(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) error
	UpdateProfile(ctx context.Context, id, name string, interests []string) error
}

// CircleRepository reads and writes circle membership
type CircleRepository interface {
	// GetCircle returns NotFound if the owner or the circle is unknown
	GetCircle(ctx context.Context, ownerID string, name valueobjects.Visibility) (*entities.Circle, error)
	// CreateCircles creates the owner's empty inner and outer circles at signup
	CreateCircles(ctx context.Context, ownerID string) error
	// AddMember is idempotent
	AddMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error
	// RemoveMember is an idempotent no-op when the member is absent
	RemoveMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error
}

// ContentFilter narrows a content listing
type ContentFilter struct {
	Kinds []valueobjects.ContentKind // empty means all kinds
}

// SignalTotals are the per-author feedback totals the scorer pulls
type SignalTotals struct {
	PositiveFeedback int // likes and thanks received across all items
	Replies          int // reply engagement received across all items
}

// ContentRepository reads and writes content items and their counters
type ContentRepository interface {
	CreateContent(ctx context.Context, item *entities.ContentItem) error
	// GetContent returns NotFound for an unknown id
	GetContent(ctx context.Context, id string) (*entities.ContentItem, error)
	ListContent(ctx context.Context, filter ContentFilter) ([]*entities.ContentItem, error)
	// IncrementFeedback bumps a monotone counter as a single atomic update
	IncrementFeedback(ctx context.Context, id string, kind valueobjects.FeedbackKind) error
	// SignalTotals aggregates current feedback totals for one author
	SignalTotals(ctx context.Context, authorID string) (SignalTotals, error)
}

// TrustRepository reads and writes manual trust edges
type TrustRepository interface {
	UpsertTrustEdge(ctx context.Context, edge entities.TrustEdge) error
	// ListTrustEdgesTo returns every edge pointing at the author
	ListTrustEdgesTo(ctx context.Context, authorID string) ([]entities.TrustEdge, error)
}
