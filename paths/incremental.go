// File: incremental.go
// Role: Incremental single/batch edge-addition feasibility checks (§4.2).
//
// addOneEdgeIncrementalASAPST relaxes one new edge, then propagates the
// change through a max-heap of (amount, vertex) frontier entries exactly
// like katalvlaran-lvlath/dijkstra's lazy-decrease-key priority queue (same
// container/heap.Interface shape, same "push duplicates, ignore stale pops"
// idea) except the heap here is ordered by *relaxation amount descending*
// rather than distance ascending, and besides stopping on "queue empty" it
// stops early, reporting a cycle, when the propagation reaches back to the
// new edge's source and the edge relaxes again.
package paths

import (
	"container/heap"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
)

// relaxOneEdgeASAPST relaxes a single edge against times, returning the
// improvement amount (0 if the edge did not relax).
func relaxOneEdgeASAPST(e cg.Edge, times PathTimes) cg.Delay {
	if times[e.Src] == ASAPUnreached {
		return 0
	}
	value := times[e.Src] + e.Weight
	if value <= times[e.Dst] {
		return 0
	}
	var amount cg.Delay
	if times[e.Dst] == ASAPUnreached {
		amount = 1 // any positive sentinel suffices: heap only needs relative order
	} else {
		amount = value - times[e.Dst]
	}
	times[e.Dst] = value
	return amount
}

// frontierItem is one entry of the incremental-relaxation frontier.
type frontierItem struct {
	amount cg.Delay
	vertex cg.VertexId
}

// frontierPQ is a max-heap of frontierItem ordered by amount descending.
type frontierPQ []frontierItem

func (pq frontierPQ) Len() int            { return len(pq) }
func (pq frontierPQ) Less(i, j int) bool  { return pq[i].amount > pq[j].amount }
func (pq frontierPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *frontierPQ) Push(x interface{}) { *pq = append(*pq, x.(frontierItem)) }
func (pq *frontierPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// AddOneEdgeIncrementalASAPST relaxes e once; if nothing changed, no cycle
// is possible and the function returns false immediately. Otherwise it
// drains a max-amount-first frontier, relaxing each popped vertex's
// outgoing edges, until either the frontier empties (no positive cycle) or
// the propagation reaches back to e.Src such that e itself would relax
// again (a positive cycle is witnessed).
func AddOneEdgeIncrementalASAPST(g *cg.Graph, e cg.Edge, times PathTimes) bool {
	pq := make(frontierPQ, 0, 8)
	if amount := relaxOneEdgeASAPST(e, times); amount > 0 {
		heap.Push(&pq, frontierItem{amount: amount, vertex: e.Dst})
	} else {
		return false
	}

	for pq.Len() > 0 {
		top := heap.Pop(&pq).(frontierItem)
		v := top.vertex

		for _, out := range g.Outgoing(v) {
			if amount := relaxOneEdgeASAPST(out, times); amount > 0 {
				heap.Push(&pq, frontierItem{amount: amount, vertex: out.Dst})
			}
		}

		if v == e.Src && relaxOneEdgeASAPST(e, times) > 0 {
			return true
		}
	}
	return false
}

// AddEdgesIncrementalASAPST adds edges one at a time, checking feasibility
// incrementally after each; on the first positive cycle it rolls back every
// edge it had added so far (symmetric with AddEdges/RemoveEdges) and
// reports the cycle. On success every edge in edges is left in the graph.
func AddEdgesIncrementalASAPST(g *cg.Graph, edges []cg.Edge, times PathTimes) bool {
	added := make([]cg.Edge, 0, len(edges))
	for _, e := range edges {
		if AddOneEdgeIncrementalASAPST(g, e, times) {
			g.RemoveEdges(added)
			return true
		}
		if !g.HasEdge(e.Src, e.Dst) {
			_ = g.AddEdge(e.Src, e.Dst, e.Weight)
			added = append(added, e)
		}
	}
	return false
}

// AddEdgesIncrementalASAPSTConst behaves like AddEdgesIncrementalASAPST but
// operates on a clone of g, leaving the caller's graph untouched regardless
// of the outcome. Useful when a solver wants a speculative check without
// any rollback bookkeeping of its own.
func AddEdgesIncrementalASAPSTConst(g *cg.Graph, edges []cg.Edge, times PathTimes) bool {
	return AddEdgesIncrementalASAPST(g.Clone(), edges, times)
}
