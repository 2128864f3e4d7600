// Package memory is an in-process implementation of the storage contract,
// used by tests and by development mode when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"crcl-backend/application/ports"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

type userRecord struct {
	name      string
	interests []string
	score     float64
}

type contentRecord struct {
	kind       valueobjects.ContentKind
	authorID   string
	body       string
	imageURL   string
	visibility valueobjects.Visibility
	anonymous  bool
	createdAt  time.Time
	snapshot   float64
	likes      int
	replies    int
}

// Store holds all tables behind one lock. Mutations are serialized store-wide,
// which is stricter than the per-entity serialization the contract asks for
// but indistinguishable to callers.
type Store struct {
	mu      sync.RWMutex
	users   map[string]userRecord
	circles map[string]map[valueobjects.Visibility]map[string]struct{}
	content map[string]contentRecord
	trust   map[string]map[string]float64 // author id -> viewer id -> weight
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[string]userRecord),
		circles: make(map[string]map[valueobjects.Visibility]map[string]struct{}),
		content: make(map[string]contentRecord),
		trust:   make(map[string]map[string]float64),
	}
}

var _ ports.UserRepository = (*Store)(nil)
var _ ports.CircleRepository = (*Store)(nil)
var _ ports.ContentRepository = (*Store)(nil)
var _ ports.TrustRepository = (*Store)(nil)

// GetUser implements ports.UserRepository
func (s *Store) GetUser(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return entities.ReconstructUser(id, rec.name, rec.interests, rec.score), nil
}

// CreateUser implements ports.UserRepository
func (s *Store) CreateUser(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID()]; exists {
		return pkgerrors.NewInvalidOperationError("user already exists")
	}
	s.users[user.ID()] = userRecord{
		name:      user.Name(),
		interests: user.Interests(),
		score:     user.CredibilityScore(),
	}
	return nil
}

// UpdateProfile implements ports.UserRepository
func (s *Store) UpdateProfile(ctx context.Context, id, name string, interests []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return pkgerrors.NewNotFoundError("user")
	}
	rec.name = name
	rec.interests = append([]string(nil), interests...)
	s.users[id] = rec
	return nil
}

// GetCircle implements ports.CircleRepository
func (s *Store) GetCircle(ctx context.Context, ownerID string, name valueobjects.Visibility) (*entities.Circle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members, err := s.circleMembers(ownerID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return entities.ReconstructCircle(ownerID, name, ids), nil
}

// CreateCircles implements ports.CircleRepository
func (s *Store) CreateCircles(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ownerID]; !ok {
		return pkgerrors.NewNotFoundError("user")
	}
	if _, exists := s.circles[ownerID]; exists {
		return nil
	}
	s.circles[ownerID] = map[valueobjects.Visibility]map[string]struct{}{
		valueobjects.VisibilityInner: {},
		valueobjects.VisibilityOuter: {},
	}
	return nil
}

// AddMember implements ports.CircleRepository
func (s *Store) AddMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.circleMembers(ownerID, name)
	if err != nil {
		return err
	}
	if memberID == ownerID {
		return pkgerrors.NewInvalidOperationError("a user cannot be a member of their own circle")
	}
	members[memberID] = struct{}{}
	return nil
}

// RemoveMember implements ports.CircleRepository
func (s *Store) RemoveMember(ctx context.Context, ownerID string, name valueobjects.Visibility, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.circleMembers(ownerID, name)
	if err != nil {
		return err
	}
	delete(members, memberID)
	return nil
}

// circleMembers expects the caller to hold the lock
func (s *Store) circleMembers(ownerID string, name valueobjects.Visibility) (map[string]struct{}, error) {
	owned, ok := s.circles[ownerID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("circle")
	}
	members, ok := owned[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("circle")
	}
	return members, nil
}

// CreateContent implements ports.ContentRepository
func (s *Store) CreateContent(ctx context.Context, item *entities.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.content[item.ID()]; exists {
		return pkgerrors.NewInvalidOperationError("content item already exists")
	}
	s.content[item.ID()] = contentRecord{
		kind:       item.Kind(),
		authorID:   item.AuthorID(),
		body:       item.Body(),
		imageURL:   item.ImageURL(),
		visibility: item.Visibility(),
		anonymous:  item.Anonymous(),
		createdAt:  item.CreatedAt(),
		snapshot:   item.CredibilitySnapshot(),
		likes:      item.Likes(),
		replies:    item.Replies(),
	}
	return nil
}

// GetContent implements ports.ContentRepository
func (s *Store) GetContent(ctx context.Context, id string) (*entities.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.content[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("content item")
	}
	return reconstruct(id, rec), nil
}

// ListContent implements ports.ContentRepository
func (s *Store) ListContent(ctx context.Context, filter ports.ContentFilter) ([]*entities.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make(map[valueobjects.ContentKind]bool, len(filter.Kinds))
	for _, k := range filter.Kinds {
		kinds[k] = true
	}

	items := make([]*entities.ContentItem, 0, len(s.content))
	for id, rec := range s.content {
		if len(kinds) > 0 && !kinds[rec.kind] {
			continue
		}
		items = append(items, reconstruct(id, rec))
	}
	return items, nil
}

// IncrementFeedback implements ports.ContentRepository
func (s *Store) IncrementFeedback(ctx context.Context, id string, kind valueobjects.FeedbackKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.content[id]
	if !ok {
		return pkgerrors.NewNotFoundError("content item")
	}
	switch kind {
	case valueobjects.FeedbackLike:
		rec.likes++
	case valueobjects.FeedbackReply:
		rec.replies++
	default:
		return pkgerrors.NewValidationError("unknown feedback kind")
	}
	s.content[id] = rec
	return nil
}

// SignalTotals implements ports.ContentRepository
func (s *Store) SignalTotals(ctx context.Context, authorID string) (ports.SignalTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals ports.SignalTotals
	for _, rec := range s.content {
		if rec.authorID != authorID {
			continue
		}
		totals.PositiveFeedback += rec.likes
		totals.Replies += rec.replies
	}
	return totals, nil
}

// UpsertTrustEdge implements ports.TrustRepository
func (s *Store) UpsertTrustEdge(ctx context.Context, edge entities.TrustEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byViewer, ok := s.trust[edge.AuthorID]
	if !ok {
		byViewer = make(map[string]float64)
		s.trust[edge.AuthorID] = byViewer
	}
	byViewer[edge.ViewerID] = edge.Weight
	return nil
}

// ListTrustEdgesTo implements ports.TrustRepository
func (s *Store) ListTrustEdgesTo(ctx context.Context, authorID string) ([]entities.TrustEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byViewer := s.trust[authorID]
	edges := make([]entities.TrustEdge, 0, len(byViewer))
	for viewerID, weight := range byViewer {
		edges = append(edges, entities.TrustEdge{ViewerID: viewerID, AuthorID: authorID, Weight: weight})
	}
	return edges, nil
}

func reconstruct(id string, rec contentRecord) *entities.ContentItem {
	return entities.ReconstructContentItem(
		id, rec.kind, rec.authorID, rec.body, rec.imageURL,
		rec.visibility, rec.anonymous, rec.createdAt, rec.snapshot,
		rec.likes, rec.replies,
	)
}
