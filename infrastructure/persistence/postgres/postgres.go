// Package postgres implements the storage contract against the managed
// relational backend (tables: profiles, circles, circle_members,
// content_items, trust_edges). Every operation is a single statement,
// atomic at the row level; there is no retry logic, failures surface as
// Unavailable and the caller decides.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pkgerrors "crcl-backend/pkg/errors"
)

// NewPool connects to the backend with the pool defaults from the
// connection string
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, pkgerrors.NewUnavailableError("storage", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, pkgerrors.NewUnavailableError("storage", err)
	}
	return pool, nil
}

// mapError translates driver errors into the engine taxonomy
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return pkgerrors.NewNotFoundError(resource)
	}
	return pkgerrors.NewUnavailableError("storage", err)
}
