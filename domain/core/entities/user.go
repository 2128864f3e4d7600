package entities

import (
	"strings"

	pkgerrors "crcl-backend/pkg/errors"
)

// User is a crcl. member. The id is the opaque identifier issued by the
// identity provider at signup; the stored credibility score is the last
// presented value, while the authoritative score is always recomputed from
// signals on demand.
type User struct {
	id               string
	name             string
	interests        []string
	credibilityScore float64
}

// NewUser creates a user at signup with a zero credibility score
func NewUser(id, name string, interests []string) (*User, error) {
	u := &User{id: id}
	if id == "" {
		return nil, pkgerrors.NewValidationError("user id cannot be empty")
	}
	if err := u.SetProfile(name, interests); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser rebuilds a user from repository data
func ReconstructUser(id, name string, interests []string, credibilityScore float64) *User {
	if credibilityScore < 0 {
		credibilityScore = 0
	}
	return &User{
		id:               id,
		name:             name,
		interests:        append([]string(nil), interests...),
		credibilityScore: credibilityScore,
	}
}

// SetProfile updates the mutable profile fields
func (u *User) SetProfile(name string, interests []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.NewValidationError("name cannot be empty")
	}

	// Dedupe interests, preserving first-seen order
	seen := make(map[string]bool, len(interests))
	unique := make([]string, 0, len(interests))
	for _, tag := range interests {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		unique = append(unique, tag)
	}

	u.name = name
	u.interests = unique
	return nil
}

// ID returns the user's opaque identifier
func (u *User) ID() string {
	return u.id
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// Interests returns a copy of the user's interest tags
func (u *User) Interests() []string {
	return append([]string(nil), u.interests...)
}

// CredibilityScore returns the stored score, always in [0, 100]
func (u *User) CredibilityScore() float64 {
	return u.credibilityScore
}
