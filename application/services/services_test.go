package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainconfig "crcl-backend/domain/config"
	"crcl-backend/domain/core/entities"
	"crcl-backend/domain/core/valueobjects"
	"crcl-backend/infrastructure/persistence/memory"

	"crcl-backend/application/services"
)

// testEnv wires the three engine services over the in-process store
type testEnv struct {
	store    *memory.Store
	cfg      *domainconfig.DomainConfig
	graph    *services.CircleGraph
	scorer   *services.CredibilityScorer
	composer *services.FeedComposer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	cfg := domainconfig.DefaultDomainConfig()
	logger := zap.NewNop()

	graph := services.NewCircleGraph(store, store, logger)
	scorer := services.NewCredibilityScorer(store, store, store, graph, cfg, logger)
	composer := services.NewFeedComposer(store, store, graph, scorer, cfg, logger)

	return &testEnv{store: store, cfg: cfg, graph: graph, scorer: scorer, composer: composer}
}

func (e *testEnv) addUser(t *testing.T, id string) {
	t.Helper()

	user, err := entities.NewUser(id, id, nil)
	require.NoError(t, err)
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	require.NoError(t, e.store.CreateCircles(context.Background(), id))
}

// addContent stores an item with a fixed timestamp so ordering is
// deterministic across runs
func (e *testEnv) addContent(t *testing.T, id, authorID string, kind valueobjects.ContentKind, visibility valueobjects.Visibility, anonymous bool, createdAt time.Time) {
	t.Helper()

	item := entities.ReconstructContentItem(
		id, kind, authorID, "body of "+id, "",
		visibility, anonymous, createdAt, 0, 0, 0,
	)
	require.NoError(t, e.store.CreateContent(context.Background(), item))
}

func (e *testEnv) like(t *testing.T, contentID string, times int) {
	t.Helper()

	for i := 0; i < times; i++ {
		require.NoError(t, e.store.IncrementFeedback(context.Background(), contentID, valueobjects.FeedbackLike))
	}
}

func (e *testEnv) reply(t *testing.T, contentID string, times int) {
	t.Helper()

	for i := 0; i < times; i++ {
		require.NoError(t, e.store.IncrementFeedback(context.Background(), contentID, valueobjects.FeedbackReply))
	}
}

func (e *testEnv) trust(t *testing.T, viewerID, authorID string, weight float64) {
	t.Helper()

	edge, err := entities.NewTrustEdge(viewerID, authorID, weight)
	require.NoError(t, err)
	require.NoError(t, e.store.UpsertTrustEdge(context.Background(), edge))
}

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}
