// File: errors.go
// Role: Sentinel errors for the cg (constraint/delay graph) package.
// Policy: only sentinel variables are exposed; callers branch with errors.Is.
// Grounded on core/types.go's sentinel-error block (same taxonomy, renamed
// for vertex/edge identity that is now an Operation/VertexId pair instead of
// a bare string).
package cg

import "errors"

var (
	// ErrVertexNotFound indicates an operation referenced a vertex id or
	// Operation that the graph does not contain.
	ErrVertexNotFound = errors.New("cg: vertex not found")

	// ErrVertexOutOfRange indicates a VertexId outside [0, len(vertices)).
	ErrVertexOutOfRange = errors.New("cg: vertex id out of range")

	// ErrVertexAlreadyExists indicates AddVertex was called twice for the
	// same Operation identity.
	ErrVertexAlreadyExists = errors.New("cg: vertex already exists")

	// ErrEdgeNotFound indicates RemoveEdge/GetWeight referenced a pair with
	// no edge between them.
	ErrEdgeNotFound = errors.New("cg: edge not found")
)
