package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// ContentRepository works with the content_items table
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates the content repository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

var _ ports.ContentRepository = (*ContentRepository)(nil)

const contentColumns = `
	id, kind, author_id, body, image_url, visibility, anonymous,
	created_at, credibility_snapshot, likes, replies
`

// CreateContent inserts a new item with zeroed counters
func (r *ContentRepository) CreateContent(ctx context.Context, item *entities.ContentItem) error {
	query := `
		INSERT INTO content_items
			(id, kind, author_id, body, image_url, visibility, anonymous,
			 created_at, credibility_snapshot, likes, replies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID(), item.Kind().String(), item.AuthorID(), item.Body(),
		nullable(item.ImageURL()), item.Visibility().String(), item.Anonymous(),
		item.CreatedAt(), item.CredibilitySnapshot(), item.Likes(), item.Replies(),
	)
	return mapError(err, "content item")
}

// GetContent returns one item
func (r *ContentRepository) GetContent(ctx context.Context, id string) (*entities.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`
	item, err := scanContent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "content item")
	}
	return item, nil
}

// ListContent returns all items matching the filter
func (r *ContentRepository) ListContent(ctx context.Context, filter ports.ContentFilter) ([]*entities.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items`
	args := []interface{}{}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			kinds = append(kinds, k.String())
		}
		query += ` WHERE kind = ANY($1)`
		args = append(args, kinds)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "content item")
	}
	defer rows.Close()

	var items []*entities.ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, mapError(err, "content item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "content item")
	}
	return items, nil
}

// IncrementFeedback bumps one counter in a single atomic update, so two
// concurrent feedback events on the same item never lose an increment
func (r *ContentRepository) IncrementFeedback(ctx context.Context, id string, kind valueobjects.FeedbackKind) error {
	var query string
	switch kind {
	case valueobjects.FeedbackLike:
		query = `UPDATE content_items SET likes = likes + 1 WHERE id = $1`
	case valueobjects.FeedbackReply:
		query = `UPDATE content_items SET replies = replies + 1 WHERE id = $1`
	default:
		return pkgerrors.NewValidationError("unknown feedback kind")
	}

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err, "content item")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.NewNotFoundError("content item")
	}
	return nil
}

// SignalTotals aggregates feedback totals for one author
func (r *ContentRepository) SignalTotals(ctx context.Context, authorID string) (ports.SignalTotals, error) {
	query := `
		SELECT COALESCE(SUM(likes), 0), COALESCE(SUM(replies), 0)
		FROM content_items WHERE author_id = $1
	`
	var totals ports.SignalTotals
	err := r.db.QueryRow(ctx, query, authorID).Scan(&totals.PositiveFeedback, &totals.Replies)
	if err != nil {
		return ports.SignalTotals{}, mapError(err, "content item")
	}
	return totals, nil
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContent(row rowScanner) (*entities.ContentItem, error) {
	var (
		id, kind, authorID, body, visibility string
		imageURL                             *string
		anonymous                            bool
		createdAt                            time.Time
		snapshot                             float64
		likes, replies                       int
	)
	err := row.Scan(&id, &kind, &authorID, &body, &imageURL, &visibility,
		&anonymous, &createdAt, &snapshot, &likes, &replies)
	if err != nil {
		return nil, err
	}

	image := ""
	if imageURL != nil {
		image = *imageURL
	}
	return entities.ReconstructContentItem(
		id,
		valueobjects.ContentKind(kind),
		authorID, body, image,
		valueobjects.Visibility(visibility),
		anonymous, createdAt, snapshot, likes, replies,
	), nil
}

// nullable maps an empty string to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
