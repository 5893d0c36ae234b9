// File: insert.go
// Role: maintenance-operation insertion and the speculative recompute
// pattern, grounded on original_source's insertMaintenance/
// recomputeSchedule (src/solvers/maintenance_heuristic.cpp) and reusing
// the same speculative-edge-add/recompute/rollback idiom as
// heuristics.validateInterleaving.
package maintenance

import (
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// insertMaintenance mints a fresh maintenance operation of maintType, adds
// it as a graph vertex, and commits it into sol's machine sequence between
// prev and next at position i, mirroring insertMaintenance.
func insertMaintenance(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, machine problem.MachineId, maintType problem.MaintTypeId, prev, next problem.Operation, position int, asapst []problem.Delay) (*partial.Solution, problem.Operation, error) {
	maintOp := inst.AddMaintenanceOperation(maintType)
	if _, err := g.AddVertex(maintOp); err != nil {
		return nil, problem.Operation{}, err
	}
	opt := partial.SchedulingOption{
		PrevOp:   prev,
		CurOp:    maintOp,
		NextOp:   next,
		Position: position,
		IsMaint:  true,
	}
	next2, err := sol.Add(machine, opt, asapst)
	if err != nil {
		return nil, problem.Operation{}, err
	}
	return next2, maintOp, nil
}

// recomputeSchedule walks sequence, wires every edge query(prev, curr)
// that the constraint graph is missing (special-casing a maintenance slot
// so the edge skips straight to the operation after it, preserving
// sequence-dependent setup-time semantics across the gap), adds the
// reverse maintenance due-date edge whenever the previous vertex was a
// maintenance operation, recomputes ASAPST (windowed if window is
// non-empty), then unconditionally rolls back every added edge before
// returning — mirroring recomputeSchedule.
func recomputeSchedule(inst *problem.Instance, g *cg.Graph, sequence []problem.Operation, times paths.PathTimes, sources, window []cg.VertexId) (paths.LongestPathResult, error) {
	maintPolicy := inst.MaintenancePolicy()
	var added []cg.Edge

	for i := 1; i < len(sequence); i++ {
		prev := sequence[i-1]
		curr := sequence[i]

		queryDst := curr
		if prev.IsMaintenance() && i+1 < len(sequence) {
			queryDst = sequence[i+1]
		}

		srcV, err := g.GetVertex(prev)
		if err != nil {
			g.RemoveEdges(added)
			return paths.LongestPathResult{}, err
		}
		dstV, err := g.GetVertex(queryDst)
		if err != nil {
			g.RemoveEdges(added)
			return paths.LongestPathResult{}, err
		}
		if !g.HasEdge(srcV, dstV) {
			w := inst.Query(prev, queryDst)
			if err := g.AddEdge(srcV, dstV, w); err != nil {
				g.RemoveEdges(added)
				return paths.LongestPathResult{}, err
			}
			added = append(added, cg.Edge{Src: srcV, Dst: dstV, Weight: w})
		}

		if prev.IsMaintenance() {
			dueWeight := maintPolicy.DurationForOp(prev) + maintPolicy.MinimumIdle() - 1
			currV, err := g.GetVertex(curr)
			if err == nil {
				rev, err := g.AddOrUpdateEdge(currV, srcV, -dueWeight)
				if err == nil {
					added = append(added, rev)
				}
			}
		}
	}

	var result paths.LongestPathResult
	if len(window) > 0 {
		result = paths.ComputeASAPSTWindow(g, times, sources, window)
	} else {
		result = paths.ComputeASAPST(g, times)
	}
	g.RemoveEdges(added)
	return result, nil
}
