package valueobjects

import "fmt"

// Visibility is the audience scope attached to a circle and a content item.
// It is a closed enum: every user owns exactly one circle per visibility.
type Visibility string

const (
	VisibilityInner Visibility = "inner"
	VisibilityOuter Visibility = "outer"
)

// ParseVisibility validates and converts a raw string
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityInner, VisibilityOuter:
		return Visibility(s), nil
	default:
		return "", fmt.Errorf("invalid visibility: %q", s)
	}
}

// IsValid reports whether the value is a member of the enum
func (v Visibility) IsValid() bool {
	return v == VisibilityInner || v == VisibilityOuter
}

// String implements fmt.Stringer
func (v Visibility) String() string {
	return string(v)
}

// VisibilityFilter widens Visibility for feed queries, where a viewer may ask
// for either scope at once
type VisibilityFilter string

const (
	FilterInner VisibilityFilter = "inner"
	FilterOuter VisibilityFilter = "outer"
	FilterBoth  VisibilityFilter = "both"
)

// ParseVisibilityFilter validates and converts a raw string; empty selects both
func ParseVisibilityFilter(s string) (VisibilityFilter, error) {
	switch VisibilityFilter(s) {
	case FilterInner, FilterOuter, FilterBoth:
		return VisibilityFilter(s), nil
	case "":
		return FilterBoth, nil
	default:
		return "", fmt.Errorf("invalid visibility filter: %q", s)
	}
}

// Matches reports whether an item with the given visibility passes the
// filter. The zero value selects both scopes, same as an absent query
// parameter.
func (f VisibilityFilter) Matches(v Visibility) bool {
	switch f {
	case FilterBoth, "":
		return true
	case FilterInner:
		return v == VisibilityInner
	case FilterOuter:
		return v == VisibilityOuter
	default:
		return false
	}
}
