package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// CircleRepository works with the circles and circle_members tables
type CircleRepository struct {
	db *pgxpool.Pool
}

// NewCircleRepository creates the circles repository
func NewCircleRepository(db *pgxpool.Pool) *CircleRepository {
	return &CircleRepository{db: db}
}

var _ ports.CircleRepository = (*CircleRepository)(nil)

// GetCircle loads a circle with its member set
func (r *CircleRepository) GetCircle(ctx context.Context, ownerID string, name valueobjects.Visibility) (*entities.Circle, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM circles WHERE owner_id = $1 AND name = $2)`,
		ownerID, name.String(),
	).Scan(&exists)
	if err != nil {
		return nil, mapError(err, "circle")
	}
	if !exists {
		return nil, pkgerrors.NewNotFoundError("circle")
	}

	rows, err := r.db.Query(ctx,
		`SELECT member_id FROM circle_members WHERE owner_id = $1 AND name = $2`,
		ownerID, name.String(),
	)
	if err != nil {
		return nil, mapError(err, "circle")
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err, "circle")
		}
		memberIDs = append(memberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "circle")
	}

	return entities.ReconstructCircle(ownerID, name, memberIDs), nil
}

// CreateCircles creates the owner's empty inner and outer circles at signup
func (r *CircleRepository) CreateCircles(ctx context.Context, ownerID string) error {
	query := `
		INSERT INTO circles (owner_id, name)
		VALUES ($1, 'inner'), ($1, 'outer')
		ON CONFLICT (owner_id, name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, ownerID)
	return mapError(err, "circle")
}

// AddMember inserts a membership row; the conflict clause makes it idempotent
func (r *CircleRepository) AddMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	if memberID == ownerID {
		return pkgerrors.NewInvalidOperationError("a user cannot be a member of their own circle")
	}
	query := `
		INSERT INTO circle_members (owner_id, name, member_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, name, member_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, ownerID, name.String(), memberID)
	return mapError(err, "circle")
}

// RemoveMember deletes a membership row; absent rows are a no-op
func (r *CircleRepository) RemoveMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	query := `
		DELETE FROM circle_members
		WHERE owner_id = $1 AND name = $2 AND member_id = $3
	`
	_, err := r.db.Exec(ctx, query, ownerID, name.String(), memberID)
	return mapError(err, "circle")
}
