package paths

import "github.com/tue-ees/forpfsspsd-scheduler/cg"

// InitializeASAPST allocates and initializes a fresh PathTimes buffer: graph
// sources (machine sources) are set to 0 when graphSources is true, the
// caller's extra sources are always set to 0, everything else starts
// unreached (ASAPUnreached).
func InitializeASAPST(g *cg.Graph, sources []cg.VertexId, graphSources bool) PathTimes {
	times := make(PathTimes, g.NumVertices())
	InitializeASAPSTInto(g, times, sources, graphSources)
	return times
}

// InitializeASAPSTInto re-initializes an existing buffer in place, avoiding
// an allocation when the buffer is being reused across many invocations.
func InitializeASAPSTInto(g *cg.Graph, times PathTimes, sources []cg.VertexId, graphSources bool) {
	for i := 0; i < g.NumVertices(); i++ {
		id := cg.VertexId(i)
		if graphSources && g.IsSource(id) {
			times[i] = 0
		} else {
			times[i] = ASAPUnreached
		}
	}
	for _, s := range sources {
		times[s] = 0
	}
}

// InitializeALAPST allocates an ALAP buffer: graph sources start at 0 when
// graphSources is true, everything else starts at ALAPUnreached. The caller
// roots the backward relaxation (ComputeALAPST) by setting the terminal
// vertex to an upper bound, mirroring forward_heuristic.hpp's use of a caller-supplied
// upper bound as the terminal's starting value.
func InitializeALAPST(g *cg.Graph, graphSources bool) PathTimes {
	times := make(PathTimes, g.NumVertices())
	for i := 0; i < g.NumVertices(); i++ {
		id := cg.VertexId(i)
		if graphSources && g.IsSource(id) {
			times[i] = 0
		} else {
			times[i] = ALAPUnreached
		}
	}
	return times
}
