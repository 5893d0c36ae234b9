// File: vertex.go
// Role: a schedule-abstraction-graph vertex (§4.8, component H), grounded
// on original_source's fms::dd::Vertex (include/fms/dd/vertex.hpp): a
// vertex bundles a partial solution (the re-entrant machine's committed
// sequence so far) with its ASAPST/ALAPST vectors and the bookkeeping the
// search needs to pop, dominate, and merge states.
package dd

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Vertex is one state in the schedule-abstraction graph: the sequence
// committed to the re-entrant machine so far, its earliest and latest
// start times, and the depth (number of committed insertions) used both
// for exploration-order scoring and for bucketing dominance comparisons.
type Vertex struct {
	ID       uint64
	ParentID uint64
	Depth    uint64

	Solution *partial.Solution
	ALAPST   paths.PathTimes

	Terminal bool
}

// allVertices returns every vertex id in g.
func allVertices(g *cg.Graph) []cg.VertexId {
	ids := make([]cg.VertexId, g.NumVertices())
	for i := range ids {
		ids[i] = cg.VertexId(i)
	}
	return ids
}

// newVertex wraps sol as a Vertex, recomputing ASAPST over the whole graph
// the same way bnb.newNode does, mirroring Vertex::lowerBound's reliance on
// a freshly recomputed ASAPST buffer.
func newVertex(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, id, parentID, depth uint64) (*Vertex, error) {
	edges, err := sol.GetAllAndInferredEdges(inst)
	if err != nil {
		return nil, err
	}
	times := paths.InitializeASAPST(g, nil, true)
	result, err := heuristics.ValidateInterleaving(inst, g, edges, times, nil, allVertices(g))
	if err != nil {
		return nil, err
	}
	if result.HasPositiveCycle() {
		return nil, fmt.Errorf("%w", ErrInfeasibleNode)
	}
	sol.SetASAPST(times)

	return &Vertex{ID: id, ParentID: parentID, Depth: depth, Solution: sol}, nil
}

// LowerBound reports the largest ASAPST value reached so far, a monotone
// non-decreasing proxy for the final makespan mirroring Vertex::lowerBound
// (there, simply the ASAPST of the graph's last vertex).
func (v *Vertex) LowerBound() problem.Delay {
	var best problem.Delay
	for _, t := range v.Solution.ASAPST() {
		if t != paths.ASAPUnreached && t > best {
			best = t
		}
	}
	return best
}

// setSlack computes v's ALAPST against upperBound (the best known
// incumbent makespan) and stores it on v, so dominance checks can compare
// remaining slack in addition to raw ASAPST. A failure (the vertex's
// committed sequence can't satisfy upperBound) leaves v.ALAPST nil;
// callers treat that as "no slack information available" rather than an
// error, since the vertex's ASAPST-only dominance still applies.
func (v *Vertex) setSlack(g *cg.Graph, upperBound problem.Delay) {
	times, err := computeALAPST(g, v.Solution.ASAPST(), upperBound)
	if err != nil {
		return
	}
	v.ALAPST = times
}

// computeALAPST computes a latest-start-time buffer for a committed
// schedule, pinned at upperBound. When the graph carries an explicit
// terminal vertex (job-shop instances), ALAPST is rooted there; fixed-order
// instances build no terminal, so as a scoped fallback every sink vertex
// (no outgoing edges) is pinned at its own current ASAPST instead of a
// shared upper bound — a zero-slack approximation at the schedule's tail.
func computeALAPST(g *cg.Graph, asapst paths.PathTimes, upperBound problem.Delay) (paths.PathTimes, error) {
	times := paths.InitializeALAPST(g, false)
	var sources []cg.VertexId

	if terminal, ok := g.Terminal(); ok {
		times[terminal] = upperBound
		sources = []cg.VertexId{terminal}
	} else {
		for i := 0; i < g.NumVertices(); i++ {
			vid := cg.VertexId(i)
			if len(g.Outgoing(vid)) == 0 {
				times[vid] = asapst[vid]
				sources = append(sources, vid)
			}
		}
	}

	result := paths.ComputeALAPST(g, times, sources)
	if result.HasPositiveCycle() {
		return nil, fmt.Errorf("dd: %w", ErrInfeasibleNode)
	}
	return times, nil
}
