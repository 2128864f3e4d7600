package services

import (
	"context"

	"go.uber.org/zap"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// CircleGraph answers audience questions over users, circle memberships and
// their distances. The membership "graph" is tiny by construction (two
// circles per user, no nesting), so it is resolved with plain lookups, not a
// graph library. All queries are pure reads; membership mutations are the
// only writes.
type CircleGraph struct {
	users   ports.UserRepository
	circles ports.CircleRepository
	logger  *zap.Logger
}

// NewCircleGraph creates the circle graph service
func NewCircleGraph(users ports.UserRepository, circles ports.CircleRepository, logger *zap.Logger) *CircleGraph {
	return &CircleGraph{
		users:   users,
		circles: circles,
		logger:  logger,
	}
}

// IsVisible reports whether the viewer may see content the author posted
// with the given visibility: true iff the viewer is a member of the author's
// circle of that name, or the viewer is the author.
func (g *CircleGraph) IsVisible(ctx context.Context, viewerID, authorID string, visibility valueobjects.Visibility) (bool, error) {
	if !visibility.IsValid() {
		return false, pkgerrors.NewValidationError("visibility must be inner or outer")
	}
	if _, err := g.users.GetUser(ctx, viewerID); err != nil {
		return false, err
	}
	if viewerID == authorID {
		return true, nil
	}
	if _, err := g.users.GetUser(ctx, authorID); err != nil {
		return false, err
	}

	circle, err := g.circles.GetCircle(ctx, authorID, visibility)
	if err != nil {
		return false, err
	}
	return circle.HasMember(viewerID), nil
}

// AddMember adds a user to one of the owner's circles. Idempotent.
func (g *CircleGraph) AddMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	if !name.IsValid() {
		return pkgerrors.NewValidationError("circle name must be inner or outer")
	}
	if memberID == ownerID {
		return pkgerrors.NewInvalidOperationError("a user cannot be a member of their own circle")
	}
	if _, err := g.users.GetUser(ctx, ownerID); err != nil {
		return err
	}
	if _, err := g.users.GetUser(ctx, memberID); err != nil {
		return err
	}

	if err := g.circles.AddMember(ctx, ownerID, name, memberID); err != nil {
		return err
	}

	g.logger.Info("circle member added",
		zap.String("owner_id", ownerID),
		zap.String("circle", name.String()),
		zap.String("member_id", memberID),
	)
	return nil
}

// RemoveMember removes a user from one of the owner's circles. Idempotent
// no-op when the member is absent.
func (g *CircleGraph) RemoveMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	if !name.IsValid() {
		return pkgerrors.NewValidationError("circle name must be inner or outer")
	}
	if _, err := g.users.GetUser(ctx, ownerID); err != nil {
		return err
	}
	return g.circles.RemoveMember(ctx, ownerID, name, memberID)
}

// CircleDistance resolves the closest circle relation from viewer to author:
// self, then inner, then outer, then none.
func (g *CircleGraph) CircleDistance(ctx context.Context, viewerID, authorID string) (valueobjects.CircleDistance, error) {
	if _, err := g.users.GetUser(ctx, viewerID); err != nil {
		return valueobjects.DistanceNone, err
	}
	if viewerID == authorID {
		return valueobjects.DistanceSelf, nil
	}
	if _, err := g.users.GetUser(ctx, authorID); err != nil {
		return valueobjects.DistanceNone, err
	}

	inner, err := g.circles.GetCircle(ctx, authorID, valueobjects.VisibilityInner)
	if err != nil {
		return valueobjects.DistanceNone, err
	}
	if inner.HasMember(viewerID) {
		return valueobjects.DistanceInner, nil
	}

	outer, err := g.circles.GetCircle(ctx, authorID, valueobjects.VisibilityOuter)
	if err != nil {
		return valueobjects.DistanceNone, err
	}
	if outer.HasMember(viewerID) {
		return valueobjects.DistanceOuter, nil
	}

	return valueobjects.DistanceNone, nil
}
