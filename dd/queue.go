// File: queue.go
// Role: the DD solver's open-vertex queue (§4.8), grounded on
// original_source's dd::orderQueue/dd::push/dd::pop (fms/solvers/dd.hpp):
// a single container whose pop order is parametrized by ExplorationType,
// implemented with the standard library's container/heap since none of the
// example repos carry a dedicated priority-queue dependency.
package dd

import "container/heap"

// queue holds open vertices and pops them according to an ExplorationType.
type queue struct {
	items []*Vertex
	order ExplorationType
	seq   int
}

func newQueue(order ExplorationType) *queue {
	q := &queue{order: order}
	heap.Init(q)
	return q
}

func (q *queue) push(v *Vertex) {
	heap.Push(q, v)
}

func (q *queue) pop() *Vertex {
	return heap.Pop(q).(*Vertex)
}

func (q *queue) Len() int { return len(q.items) }

// Less implements each ExplorationType's pop priority; Adaptive blends
// Depth and Best based on how many vertices have been pushed so far,
// mirroring branch_bound.cpp's periodic strategy switch without needing a
// wall-clock read (forbidden in this scheduling core, only the caller's
// context carries time).
func (q *queue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	switch q.effectiveOrder() {
	case Breadth:
		return a.ID < b.ID
	case Depth:
		return a.ID > b.ID
	case StaticPriority:
		return rankScore(a) < rankScore(b)
	default: // Best
		return a.LowerBound() < b.LowerBound()
	}
}

func (q *queue) effectiveOrder() ExplorationType {
	if q.order != Adaptive {
		return q.order
	}
	if (q.seq/adaptivePeriod)%2 == 0 {
		return Depth
	}
	return Best
}

// rankScore blends lower bound and depth, mirroring branch_bound.cpp's
// ranked() normalized weights (0.75 on the bound, 0.25 on progress) so a
// deep, nearly-complete vertex can still edge out a shallow one with a
// marginally smaller bound.
func rankScore(v *Vertex) float64 {
	return 0.75*float64(v.LowerBound()) - 0.25*float64(v.Depth)
}

func (q *queue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *queue) Push(x interface{}) {
	q.items = append(q.items, x.(*Vertex))
	q.seq++
}

func (q *queue) Pop() interface{} {
	n := len(q.items)
	v := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return v
}
