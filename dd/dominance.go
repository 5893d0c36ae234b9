// File: dominance.go
// Role: dominance-based state merging (§4.8), grounded on
// original_source's fms::solvers::dd::findVertexDominance/isDominated/
// mergeOperator (include/fms/solvers/dd.hpp): two vertices at the same
// depth (same number of committed insertions) represent the same
// scheduling decision taken in a different order; if one's ASAPST is
// component-wise no later than the other's everywhere it matters, the
// later one can never produce a strictly better completion and is
// dominated.
package dd

// registry tracks the active (non-dominated) vertices produced so far,
// bucketed by depth, mirroring the original's per-depth vertex layers.
type registry struct {
	byDepth map[uint64][]*Vertex
}

func newRegistry() *registry {
	return &registry{byDepth: make(map[uint64][]*Vertex)}
}

// admit checks v against the vertices already active at its depth. If v
// is dominated by an existing vertex, admit reports false and v should be
// discarded. Otherwise any existing vertices that v dominates are dropped
// from the registry (the mergeOperator's counterpart: rather than fusing
// states, the dominated ones are simply pruned, since this codebase's
// Vertex carries no extra state beyond ASAPST worth merging), v is added,
// and admit reports true.
func (r *registry) admit(v *Vertex) bool {
	layer := r.byDepth[v.Depth]
	survivors := layer[:0]
	for _, existing := range layer {
		switch {
		case dominates(existing, v):
			r.byDepth[v.Depth] = layer
			return false
		case dominates(v, existing):
			// existing is dominated by v, drop it.
		default:
			survivors = append(survivors, existing)
		}
	}
	r.byDepth[v.Depth] = append(survivors, v)
	return true
}

// dominates reports whether a dominates b: same committed sequence
// length (depth), a's ASAPST is no later than b's at every reached
// vertex, and — when both carry slack information — a has at least as
// much remaining slack (ALAPST) everywhere too, mirroring isDominated's
// combined earliest/latest comparison rather than ASAPST alone.
func dominates(a, b *Vertex) bool {
	if a == b {
		return false
	}
	at, bt := a.Solution.ASAPST(), b.Solution.ASAPST()
	if len(at) != len(bt) {
		return false
	}
	for i := range at {
		if at[i] > bt[i] {
			return false
		}
	}
	if a.ALAPST != nil && b.ALAPST != nil && len(a.ALAPST) == len(b.ALAPST) {
		for i := range a.ALAPST {
			if a.ALAPST[i] < b.ALAPST[i] {
				return false
			}
		}
	}
	return true
}

// width reports how many active vertices currently occupy depth d.
func (r *registry) width(d uint64) int {
	return len(r.byDepth[d])
}

// prune drops the worst (largest LowerBound) vertices at depth d until at
// most maxWidth remain, a beam-search cap against state explosion when
// WithMaxWidth is set.
func (r *registry) prune(d uint64, maxWidth int) (dropped []*Vertex) {
	if maxWidth <= 0 {
		return nil
	}
	layer := r.byDepth[d]
	if len(layer) <= maxWidth {
		return nil
	}
	// simple selection: repeatedly drop the current worst until the
	// layer fits, good enough since maxWidth overruns are expected to be
	// small relative to the cap.
	for len(layer) > maxWidth {
		worst := 0
		for i, v := range layer {
			if v.LowerBound() > layer[worst].LowerBound() {
				worst = i
			}
		}
		dropped = append(dropped, layer[worst])
		layer = append(layer[:worst], layer[worst+1:]...)
	}
	r.byDepth[d] = layer
	return dropped
}
