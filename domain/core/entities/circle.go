package entities

import (
	"sort"

	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

// Circle is a named audience scope owned by exactly one user. Every user has
// exactly two, one inner and one outer, both created empty at signup.
// Membership is a set: ids are unique and never include the owner.
type Circle struct {
	ownerID string
	name    valueobjects.Visibility
	members map[string]struct{}
}

// NewCircle creates an empty circle for a new user
func NewCircle(ownerID string, name valueobjects.Visibility) (*Circle, error) {
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("circle owner cannot be empty")
	}
	if !name.IsValid() {
		return nil, pkgerrors.NewValidationError("circle name must be inner or outer")
	}
	return &Circle{
		ownerID: ownerID,
		name:    name,
		members: make(map[string]struct{}),
	}, nil
}

// ReconstructCircle rebuilds a circle from repository data, dropping any
// duplicate or owner ids the backing rows might carry
func ReconstructCircle(ownerID string, name valueobjects.Visibility, memberIDs []string) *Circle {
	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		if id == "" || id == ownerID {
			continue
		}
		members[id] = struct{}{}
	}
	return &Circle{ownerID: ownerID, name: name, members: members}
}

// AddMember adds a user to the circle. Idempotent; a user can never join
// their own circle.
func (c *Circle) AddMember(memberID string) error {
	if memberID == "" {
		return pkgerrors.NewValidationError("member id cannot be empty")
	}
	if memberID == c.ownerID {
		return pkgerrors.NewInvalidOperationError("a user cannot be a member of their own circle")
	}
	c.members[memberID] = struct{}{}
	return nil
}

// RemoveMember removes a user from the circle; no-op if absent
func (c *Circle) RemoveMember(memberID string) {
	delete(c.members, memberID)
}

// HasMember reports whether the user is in the circle
func (c *Circle) HasMember(memberID string) bool {
	_, ok := c.members[memberID]
	return ok
}

// OwnerID returns the owning user's id
func (c *Circle) OwnerID() string {
	return c.ownerID
}

// Name returns the circle's visibility name
func (c *Circle) Name() valueobjects.Visibility {
	return c.name
}

// Size returns the number of members
func (c *Circle) Size() int {
	return len(c.members)
}

// MemberIDs returns the member ids in stable order
func (c *Circle) MemberIDs() []string {
	ids := make([]string, 0, len(c.members))
	for id := range c.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
