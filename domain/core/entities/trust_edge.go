package entities

import (
	pkgerrors "crcl-backend/pkg/errors"
)

// TrustEdge is a directed manual trust relation from a viewer to an author
// with a weight in [0, 1]. Absence of an edge means the default derived from
// circle membership alone.
type TrustEdge struct {
	ViewerID string
	AuthorID string
	Weight   float64
}

// NewTrustEdge validates and creates a trust edge
func NewTrustEdge(viewerID, authorID string, weight float64) (TrustEdge, error) {
	if viewerID == "" || authorID == "" {
		return TrustEdge{}, pkgerrors.NewValidationError("trust edge requires viewer and author ids")
	}
	if viewerID == authorID {
		return TrustEdge{}, pkgerrors.NewInvalidOperationError("a user cannot declare trust in themselves")
	}
	if weight < 0 || weight > 1 {
		return TrustEdge{}, pkgerrors.NewValidationError("trust weight must be in [0, 1]")
	}
	return TrustEdge{ViewerID: viewerID, AuthorID: authorID, Weight: weight}, nil
}
