package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crcl-backend/domain/core/valueobjects"
	pkgerrors "crcl-backend/pkg/errors"
)

func TestCircle_AddMember_RejectsOwner(t *testing.T) {
	// Arrange
	circle, err := NewCircle("alice", valueobjects.VisibilityInner)
	require.NoError(t, err)

	// Act
	err = circle.AddMember("alice")

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidOperation(err))
	assert.Equal(t, 0, circle.Size())
}

func TestCircle_AddMember_IsIdempotent(t *testing.T) {
	circle, err := NewCircle("alice", valueobjects.VisibilityInner)
	require.NoError(t, err)

	require.NoError(t, circle.AddMember("bob"))
	require.NoError(t, circle.AddMember("bob"))

	assert.Equal(t, 1, circle.Size())
	assert.True(t, circle.HasMember("bob"))
}

func TestCircle_RemoveMember_AbsentIsNoOp(t *testing.T) {
	circle, err := NewCircle("alice", valueobjects.VisibilityOuter)
	require.NoError(t, err)
	require.NoError(t, circle.AddMember("bob"))

	circle.RemoveMember("carol")
	circle.RemoveMember("bob")
	circle.RemoveMember("bob")

	assert.Equal(t, 0, circle.Size())
}

func TestCircle_MemberIDs_StableOrder(t *testing.T) {
	circle, err := NewCircle("alice", valueobjects.VisibilityInner)
	require.NoError(t, err)
	for _, id := range []string{"dave", "bob", "carol"} {
		require.NoError(t, circle.AddMember(id))
	}

	assert.Equal(t, []string{"bob", "carol", "dave"}, circle.MemberIDs())
}

func TestReconstructCircle_DropsOwnerAndDuplicates(t *testing.T) {
	circle := ReconstructCircle("alice", valueobjects.VisibilityInner, []string{"bob", "alice", "bob", ""})

	assert.Equal(t, []string{"bob"}, circle.MemberIDs())
}

func TestNewTrustEdge(t *testing.T) {
	tests := []struct {
		name     string
		viewerID string
		authorID string
		weight   float64
		wantErr  bool
	}{
		{name: "valid", viewerID: "alice", authorID: "bob", weight: 0.7},
		{name: "zero weight", viewerID: "alice", authorID: "bob", weight: 0},
		{name: "full weight", viewerID: "alice", authorID: "bob", weight: 1},
		{name: "self edge", viewerID: "alice", authorID: "alice", weight: 0.5, wantErr: true},
		{name: "negative weight", viewerID: "alice", authorID: "bob", weight: -0.1, wantErr: true},
		{name: "weight above one", viewerID: "alice", authorID: "bob", weight: 1.1, wantErr: true},
		{name: "missing viewer", viewerID: "", authorID: "bob", weight: 0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, err := NewTrustEdge(tt.viewerID, tt.authorID, tt.weight)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weight, edge.Weight)
		})
	}
}
