// File: alap.go
// Role: As-late-as-possible relaxation, mirroring ComputeASAPST in reverse:
// relax incoming edges, rooted at the terminal (or graph sources) with an
// upper bound.
package paths

import "github.com/tue-ees/forpfsspsd-scheduler/cg"

// ComputeALAPST relaxes an already-initialized ALAP buffer by walking
// incoming edges backwards from each vertex: ALAPST[v] - w is a candidate
// for ALAPST[src] whenever it is smaller than the current value. sources
// (typically just the terminal vertex) are pinned and must never be
// relaxed further — if a relaxation would touch one, the graph is
// infeasible for the requested upper bound and that edge is returned.
func ComputeALAPST(g *cg.Graph, times PathTimes, sources []cg.VertexId) LongestPathResult {
	if g == nil {
		return LongestPathResult{}
	}
	pinned := make(map[cg.VertexId]bool, len(sources))
	for _, s := range sources {
		pinned[s] = true
	}

	n := g.NumVertices()
	for i := 1; i < n; i++ {
		relaxed, infeasible := relaxAllALAPST(g, times, pinned)
		if infeasible != nil {
			return LongestPathResult{PositiveCycle: []cg.Edge{*infeasible}}
		}
		if !relaxed {
			break
		}
	}
	return LongestPathResult{}
}

func relaxAllALAPST(g *cg.Graph, times PathTimes, pinned map[cg.VertexId]bool) (bool, *cg.Edge) {
	relaxed := false
	n := g.NumVertices()
	var v cg.VertexId
	for v = 0; int(v) < n; v++ {
		if times[v] == ALAPUnreached {
			continue
		}
		for _, e := range g.Incoming(v) {
			value := times[v] - e.Weight
			if value >= times[e.Src] {
				continue
			}
			if pinned[e.Src] {
				witness := cg.Edge{Src: e.Src, Dst: v, Weight: e.Weight}
				return relaxed, &witness
			}
			times[e.Src] = value
			relaxed = true
		}
	}
	return relaxed, nil
}
