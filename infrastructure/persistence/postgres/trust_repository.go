package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/entities"
)

// TrustRepository works with the trust_edges table
type TrustRepository struct {
	db *pgxpool.Pool
}

// NewTrustRepository creates the trust repository
func NewTrustRepository(db *pgxpool.Pool) *TrustRepository {
	return &TrustRepository{db: db}
}

var _ ports.TrustRepository = (*TrustRepository)(nil)

// UpsertTrustEdge writes the viewer's manual trust in the author
func (r *TrustRepository) UpsertTrustEdge(ctx context.Context, edge entities.TrustEdge) error {
	query := `
		INSERT INTO trust_edges (viewer_id, author_id, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (viewer_id, author_id) DO UPDATE SET weight = EXCLUDED.weight
	`
	_, err := r.db.Exec(ctx, query, edge.ViewerID, edge.AuthorID, edge.Weight)
	return mapError(err, "trust edge")
}

// ListTrustEdgesTo returns every edge pointing at the author
func (r *TrustRepository) ListTrustEdgesTo(ctx context.Context, authorID string) ([]entities.TrustEdge, error) {
	query := `SELECT viewer_id, author_id, weight FROM trust_edges WHERE author_id = $1`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, mapError(err, "trust edge")
	}
	defer rows.Close()

	var edges []entities.TrustEdge
	for rows.Next() {
		var edge entities.TrustEdge
		if err := rows.Scan(&edge.ViewerID, &edge.AuthorID, &edge.Weight); err != nil {
			return nil, mapError(err, "trust edge")
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "trust edge")
	}
	return edges, nil
}
