// File: cycle.go
// Role: Full positive-cycle extraction with parent pointers (§4.2).
//
// Grounded on original_source's getPositiveCycle (itself citing
// cp-algorithms.com's negative-cycle recipe): run |V| full relaxation
// passes recording parents, then walk the parent chain |V| times from the
// last vertex modified in the final pass to guarantee landing inside the
// cycle, then follow parents until the start vertex recurs.
package paths

import "github.com/tue-ees/forpfsspsd-scheduler/cg"

// ExtractPositiveCycle runs a fresh ASAPST computation from scratch (graph
// sources only) and returns the positive cycle, if any, as an ordered edge
// list. Returns nil if the graph is feasible.
func ExtractPositiveCycle(g *cg.Graph) []cg.Edge {
	times := InitializeASAPST(g, nil, true)
	n := g.NumVertices()
	parent := make([]cg.VertexId, n)
	for i := range parent {
		parent[i] = cg.NoVertex
	}
	var lastModified cg.VertexId = cg.NoVertex

	for i := 0; i < n; i++ {
		lastModified = cg.NoVertex
		var u cg.VertexId
		for u = 0; int(u) < n; u++ {
			if times[u] == ASAPUnreached {
				continue
			}
			for _, e := range g.Outgoing(u) {
				value := times[u] + e.Weight
				if value > times[e.Dst] {
					times[e.Dst] = value
					parent[e.Dst] = u
					lastModified = e.Dst
				}
			}
		}
	}

	if lastModified == cg.NoVertex {
		return nil
	}

	// Walk back n times to guarantee landing on a vertex that is actually
	// inside the cycle (not just reachable from it).
	v := lastModified
	for i := 0; i < n; i++ {
		if v == cg.NoVertex {
			return nil
		}
		v = parent[v]
	}
	if v == cg.NoVertex {
		return nil
	}

	start := v
	var cycle []cg.Edge
	for {
		src := parent[v]
		if src == cg.NoVertex {
			return nil
		}
		w, err := g.GetWeight(src, v)
		if err != nil {
			return nil
		}
		cycle = append(cycle, cg.Edge{Src: src, Dst: v, Weight: w})
		v = src
		if v == start && len(cycle) > 1 {
			break
		}
	}
	// Reverse into source->...->back-to-source order.
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle
}
