package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/entities"
	pkgerrors "crcl-backend/pkg/errors"
)

// UserRepository works with the profiles table
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates the profiles repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// GetUser returns one profile row
func (r *UserRepository) GetUser(ctx context.Context, id string) (*entities.User, error) {
	query := `
		SELECT id, name, interests, credibility_score
		FROM profiles WHERE id = $1
	`
	var (
		userID    string
		name      string
		interests []string
		score     float64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&userID, &name, &interests, &score)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return entities.ReconstructUser(userID, name, interests, score), nil
}

// CreateUser inserts the profile row created at signup
func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO profiles (id, name, interests, credibility_score)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, user.ID(), user.Name(), user.Interests(), user.CredibilityScore())
	return mapError(err, "user")
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name string, interests []string) error {
	query := `
		UPDATE profiles SET name = $2, interests = $3 WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, name, interests)
	if err != nil {
		return mapError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("user")
	}
	return nil
}
