package paths

import (
	"math"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
)

// PathTimes is a dense vector indexed by cg.VertexId holding the current
// best lower bound on start(v) relative to the graph's sources.
type PathTimes []cg.Delay

// ASAPUnreached is the "-infinity" sentinel marking a vertex not yet reached
// by any relaxation; ALAPUnreached is its "+infinity" mirror for the
// as-late-as-possible pass.
const (
	ASAPUnreached cg.Delay = math.MinInt64
	ALAPUnreached cg.Delay = math.MaxInt64
)

// LongestPathResult reports the outcome of a longest-path computation.
// PositiveCycle is non-empty iff the computation found the graph infeasible
// (or, for the window variant, refused to retime committed work); it holds
// a single witness edge, the first one that still relaxes or the refused
// one. ExtractPositiveCycle returns the whole cycle as an ordered edge list.
type LongestPathResult struct {
	PositiveCycle []cg.Edge
}

// HasPositiveCycle reports whether the computation found a positive cycle.
func (r LongestPathResult) HasPositiveCycle() bool { return len(r.PositiveCycle) > 0 }

// LongestPathResultWithTimes bundles a LongestPathResult with the PathTimes
// buffer it was computed into, for call sites that do not already own one.
type LongestPathResultWithTimes struct {
	LongestPathResult
	Times PathTimes
}
