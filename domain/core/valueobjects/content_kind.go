package valueobjects

import "fmt"

// ContentKind tags the two content variants
type ContentKind string

const (
	KindRecommendation ContentKind = "recommendation"
	KindQuestion       ContentKind = "question"
)

// ParseContentKind validates and converts a raw string
func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case KindRecommendation, KindQuestion:
		return ContentKind(s), nil
	default:
		return "", fmt.Errorf("invalid content kind: %q", s)
	}
}

// IsValid reports whether the value is a member of the enum
func (k ContentKind) IsValid() bool {
	return k == KindRecommendation || k == KindQuestion
}

// String implements fmt.Stringer
func (k ContentKind) String() string {
	return string(k)
}

// FeedbackKind names the monotone engagement counters on a content item
type FeedbackKind string

const (
	FeedbackLike  FeedbackKind = "like"
	FeedbackReply FeedbackKind = "reply"
)

// IsValid reports whether the value is a member of the enum
func (k FeedbackKind) IsValid() bool {
	return k == FeedbackLike || k == FeedbackReply
}
