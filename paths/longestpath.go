// File: longestpath.go
// Role: Full and windowed Bellman-Ford-Moore longest-path relaxation.
//
// Grounded on original_source/.../algorithms/longest_path.cpp: the same
// "relax every vertex's outgoing edges, stop when a pass changes nothing,
// then do one extra pass to witness a positive cycle" structure, translated
// into idiomatic Go with explicit, pre-declared loop variables in the style
// of katalvlaran-lvlath/tsp's hot-path functions.
package paths

import "github.com/tue-ees/forpfsspsd-scheduler/cg"

// ComputeASAPST relaxes the already-initialized times buffer to a fixed
// point (or to a positive-cycle witness) using every vertex in the graph as
// a potential relaxation source. times must have been produced by
// InitializeASAPST/InitializeASAPSTInto for this graph.
//
// Complexity: O(V*E) worst case; an early exit on a quiet pass makes the
// typical case much closer to O(E).
func ComputeASAPST(g *cg.Graph, times PathTimes) LongestPathResult {
	if g == nil {
		return LongestPathResult{}
	}
	n := g.NumVertices()
	// |V|-1 relaxation passes (Bellman-Ford bound); stop early if a pass
	// relaxes nothing.
	for i := 1; i < n; i++ {
		if !relaxAllASAPST(g, times) {
			return LongestPathResult{}
		}
	}

	// Final pass: the first edge that still relaxes witnesses a positive cycle.
	return LongestPathResult{PositiveCycle: findFirstRelaxableEdge(g, times)}
}

// relaxAllASAPST performs one full pass over every vertex's outgoing edges,
// relaxing times in place. Returns whether any edge was relaxed.
func relaxAllASAPST(g *cg.Graph, times PathTimes) bool {
	relaxed := false
	n := g.NumVertices()
	var u cg.VertexId
	for u = 0; int(u) < n; u++ {
		if times[u] == ASAPUnreached {
			continue
		}
		for _, e := range g.Outgoing(u) {
			value := times[u] + e.Weight
			if value > times[e.Dst] {
				times[e.Dst] = value
				relaxed = true
			}
		}
	}
	return relaxed
}

// findFirstRelaxableEdge scans every vertex once and returns the first
// outgoing edge that would still relax times; empty when none does (graph
// is feasible).
func findFirstRelaxableEdge(g *cg.Graph, times PathTimes) []cg.Edge {
	n := g.NumVertices()
	var u cg.VertexId
	for u = 0; int(u) < n; u++ {
		if times[u] == ASAPUnreached {
			continue
		}
		for _, e := range g.Outgoing(u) {
			if times[u]+e.Weight > times[e.Dst] {
				return []cg.Edge{e}
			}
		}
	}
	return nil
}

// ComputeASAPSTWithEdges adds inputEdges to the graph, computes ASAPST, and
// removes them again before returning — regardless of the outcome, so a
// caller can speculatively try a set of candidate edges without leaking
// state on infeasibility.
func ComputeASAPSTWithEdges(g *cg.Graph, times PathTimes, inputEdges []cg.Edge) (LongestPathResult, error) {
	added, err := g.AddEdges(inputEdges)
	if err != nil {
		return LongestPathResult{}, err
	}
	result := ComputeASAPST(g, times)
	g.RemoveEdges(added)
	return result, nil
}

// ComputeASAPSTFull is the convenience overload that both allocates and
// initializes times, and computes the result in one call.
func ComputeASAPSTFull(g *cg.Graph, sources []cg.VertexId, graphSources bool) LongestPathResultWithTimes {
	times := InitializeASAPST(g, sources, graphSources)
	result := ComputeASAPST(g, times)
	return LongestPathResultWithTimes{LongestPathResult: result, Times: times}
}

// minRealJobID returns the smallest non-negative JobId found in window, and
// whether any such vertex existed. Pseudo-operations (machine sources, the
// terminal, maintenance) carry negative JobId values by construction and are
// excluded: the "do not retime already-committed work" rule only concerns
// real job operations.
func minRealJobID(g *cg.Graph, window []cg.VertexId) (cg.JobId, bool) {
	var (
		min   cg.JobId
		found bool
	)
	for _, v := range window {
		op, err := g.Operation(v)
		if err != nil || op.Job < 0 {
			continue
		}
		if !found || op.Job < min {
			min = op.Job
			found = true
		}
	}
	return min, found
}

// ComputeASAPSTWindow restricts relaxation sources to sources ∪ graph
// sources ∪ window (§4.2's "window variant"). A relaxation that would
// improve the start time of a vertex belonging to a job strictly earlier
// than the window's minimum job is refused and its edge is returned as the
// infeasibility witness — re-timing already-committed operations is not
// allowed.
func ComputeASAPSTWindow(g *cg.Graph, times PathTimes, sources, window []cg.VertexId) LongestPathResult {
	firstJobID, hasBound := minRealJobID(g, window)

	all := make([]cg.VertexId, 0, len(sources)+len(window)+4)
	all = append(all, sources...)
	all = append(all, g.GraphSources()...)
	all = append(all, window...)

	n := len(all)
	for i := 1; i < n; i++ {
		relaxed, infeasible := relaxWindowASAPST(g, all, firstJobID, hasBound, times)
		if infeasible != nil {
			return LongestPathResult{PositiveCycle: []cg.Edge{*infeasible}}
		}
		if !relaxed {
			break
		}
	}

	// Final witness scan, restricted to the same active set (mirrors the
	// full variant's last pass, but only over vertices we were allowed to
	// touch).
	for _, u := range all {
		if times[u] == ASAPUnreached {
			continue
		}
		for _, e := range g.Outgoing(u) {
			if times[u]+e.Weight > times[e.Dst] {
				return LongestPathResult{PositiveCycle: []cg.Edge{e}}
			}
		}
	}
	return LongestPathResult{}
}

// relaxWindowASAPST performs one restricted relaxation pass over `active`.
func relaxWindowASAPST(g *cg.Graph, active []cg.VertexId, firstJobID cg.JobId, hasBound bool, times PathTimes) (bool, *cg.Edge) {
	relaxed := false
	for _, u := range active {
		if times[u] == ASAPUnreached {
			continue
		}
		for _, e := range g.Outgoing(u) {
			value := times[u] + e.Weight
			if value <= times[e.Dst] {
				continue
			}
			if hasBound {
				dstOp, err := g.Operation(e.Dst)
				if err == nil && dstOp.Job >= 0 && dstOp.Job < firstJobID {
					witness := e
					return relaxed, &witness
				}
			}
			times[e.Dst] = value
			relaxed = true
		}
	}
	return relaxed, nil
}
