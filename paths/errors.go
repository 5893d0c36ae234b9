// Package paths implements the windowed/incremental Bellman-Ford-Moore
// longest-path kernel (§4.2 of the specification): it computes ASAP/ALAP
// start times over a cg.Graph and detects positive cycles, which signal
// infeasibility of the schedule being built.
//
// The kernel never mutates the graph it is given; it only mutates the
// caller-owned PathTimes buffer, so callers can reuse a buffer across many
// invocations (grounded on katalvlaran-lvlath/dijkstra's single-buffer
// runner pattern, reworked here for a multi-source longest-path relaxation
// instead of a single-source shortest-path heap search).
package paths

import "errors"

var (
	// ErrNilGraph indicates a nil *cg.Graph was passed to the kernel.
	ErrNilGraph = errors.New("paths: graph is nil")

	// ErrPathTimesTooShort indicates the caller's PathTimes buffer has fewer
	// entries than the graph has vertices.
	ErrPathTimesTooShort = errors.New("paths: times buffer shorter than graph")
)
