package entities

import (
	"strings"
	"time"

	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// ContentItem is the tagged Recommendation | Question variant. Items are
// immutable after creation except for the reply and like counters, which
// only increase.
type ContentItem struct {
	id                  string
	kind                valueobjects.ContentKind
	authorID            string
	body                string
	imageURL            string
	visibility          valueobjects.Visibility
	anonymous           bool
	createdAt           time.Time
	credibilitySnapshot float64 // author's raw score at post time
	likes               int
	replies             int
}

// NewRecommendation creates a recommendation post
func NewRecommendation(id, authorID, body, imageURL string, visibility valueobjects.Visibility, anonymous bool, credibilitySnapshot float64) (*ContentItem, error) {
	item, err := newContentItem(id, valueobjects.KindRecommendation, authorID, body, visibility, anonymous, credibilitySnapshot)
	if err != nil {
		return nil, err
	}
	item.imageURL = strings.TrimSpace(imageURL)
	return item, nil
}

// NewQuestion creates a question post. Questions carry no image reference.
func NewQuestion(id, authorID, body string, visibility valueobjects.Visibility, anonymous bool, credibilitySnapshot float64) (*ContentItem, error) {
	return newContentItem(id, valueobjects.KindQuestion, authorID, body, visibility, anonymous, credibilitySnapshot)
}

func newContentItem(id string, kind valueobjects.ContentKind, authorID, body string, visibility valueobjects.Visibility, anonymous bool, credibilitySnapshot float64) (*ContentItem, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("content id cannot be empty")
	}
	if authorID == "" {
		return nil, pkgerrors.NewValidationError("author id cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, pkgerrors.NewValidationError("body cannot be empty")
	}
	if !visibility.IsValid() {
		return nil, pkgerrors.NewValidationError("visibility must be inner or outer")
	}
	if credibilitySnapshot < 0 {
		credibilitySnapshot = 0
	}

	return &ContentItem{
		id:                  id,
		kind:                kind,
		authorID:            authorID,
		body:                strings.TrimSpace(body),
		visibility:          visibility,
		anonymous:           anonymous,
		createdAt:           time.Now().UTC(),
		credibilitySnapshot: credibilitySnapshot,
	}, nil
}

// ReconstructContentItem rebuilds an item from repository data with
// preserved timestamp and counters
func ReconstructContentItem(
	id string,
	kind valueobjects.ContentKind,
	authorID, body, imageURL string,
	visibility valueobjects.Visibility,
	anonymous bool,
	createdAt time.Time,
	credibilitySnapshot float64,
	likes, replies int,
) *ContentItem {
	return &ContentItem{
		id:                  id,
		kind:                kind,
		authorID:            authorID,
		body:                body,
		imageURL:            imageURL,
		visibility:          visibility,
		anonymous:           anonymous,
		createdAt:           createdAt,
		credibilitySnapshot: credibilitySnapshot,
		likes:               likes,
		replies:             replies,
	}
}

// ApplyFeedback bumps one of the monotone counters
func (c *ContentItem) ApplyFeedback(kind valueobjects.FeedbackKind) error {
	switch kind {
	case valueobjects.FeedbackLike:
		c.likes++
	case valueobjects.FeedbackReply:
		c.replies++
	default:
		return pkgerrors.NewValidationError("unknown feedback kind")
	}
	return nil
}

// ID returns the item id
func (c *ContentItem) ID() string { return c.id }

// Kind returns the variant tag
func (c *ContentItem) Kind() valueobjects.ContentKind { return c.kind }

// AuthorID returns the author id. Present even for anonymous items; the
// request layer is responsible for redaction.
func (c *ContentItem) AuthorID() string { return c.authorID }

// Body returns the body text
func (c *ContentItem) Body() string { return c.body }

// ImageURL returns the optional image reference, empty if none
func (c *ContentItem) ImageURL() string { return c.imageURL }

// Visibility returns the audience scope
func (c *ContentItem) Visibility() valueobjects.Visibility { return c.visibility }

// Anonymous reports whether the author asked to be hidden
func (c *ContentItem) Anonymous() bool { return c.anonymous }

// CreatedAt returns the creation timestamp
func (c *ContentItem) CreatedAt() time.Time { return c.createdAt }

// CredibilitySnapshot returns the author's raw score captured at post time
func (c *ContentItem) CredibilitySnapshot() float64 { return c.credibilitySnapshot }

// Likes returns the like counter
func (c *ContentItem) Likes() int { return c.likes }

// Replies returns the reply counter
func (c *ContentItem) Replies() int { return c.replies }
