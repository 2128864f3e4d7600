package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

func TestCircleGraph_IsVisible(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")

	// bob is in alice's inner circle, carol in her outer circle
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityOuter, "carol"))

	tests := []struct {
		name       string
		viewerID   string
		visibility valueobjects.Visibility
		want       bool
	}{
		{name: "inner member sees inner", viewerID: "bob", visibility: valueobjects.VisibilityInner, want: true},
		{name: "inner member does not see outer unless added", viewerID: "bob", visibility: valueobjects.VisibilityOuter, want: false},
		{name: "outer member sees outer", viewerID: "carol", visibility: valueobjects.VisibilityOuter, want: true},
		{name: "outer member does not see inner", viewerID: "carol", visibility: valueobjects.VisibilityInner, want: false},
		{name: "author always sees own content", viewerID: "alice", visibility: valueobjects.VisibilityInner, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, err := env.graph.IsVisible(ctx, tt.viewerID, "alice", tt.visibility)
			require.NoError(t, err)
			assert.Equal(t, tt.want, visible)
		})
	}
}

func TestCircleGraph_IsVisible_UnknownUsers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")

	_, err := env.graph.IsVisible(ctx, "ghost", "alice", valueobjects.VisibilityInner)
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = env.graph.IsVisible(ctx, "alice", "ghost", valueobjects.VisibilityInner)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCircleGraph_AddMember_RejectsSelf(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")

	err := env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "alice")

	assert.True(t, pkgerrors.IsInvalidOperation(err))
}

func TestCircleGraph_AddMember_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))

	circle, err := env.store.GetCircle(ctx, "alice", valueobjects.VisibilityInner)
	require.NoError(t, err)
	assert.Equal(t, 1, circle.Size())
}

func TestCircleGraph_RemoveMember_AbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	assert.NoError(t, env.graph.RemoveMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))
}

func TestCircleGraph_CircleDistance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")
	env.addUser(t, "dave")

	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityOuter, "bob"))
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityOuter, "carol"))

	tests := []struct {
		name     string
		viewerID string
		want     valueobjects.CircleDistance
	}{
		{name: "self wins over membership", viewerID: "alice", want: valueobjects.DistanceSelf},
		{name: "inner wins over outer", viewerID: "bob", want: valueobjects.DistanceInner},
		{name: "outer only", viewerID: "carol", want: valueobjects.DistanceOuter},
		{name: "no relation", viewerID: "dave", want: valueobjects.DistanceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, err := env.graph.CircleDistance(ctx, tt.viewerID, "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.want, distance)
		})
	}
}

func TestCircleGraph_MembershipIsDirectional(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	// bob is in alice's circle; alice is not in bob's
	require.NoError(t, env.graph.AddMember(ctx, "alice", valueobjects.VisibilityInner, "bob"))

	distance, err := env.graph.CircleDistance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, valueobjects.DistanceNone, distance)
}
