// File: trigger.go
// Role: the package's entry point, wiring idle tracking, insertion,
// recompute and repair into a single pass over a re-entrant machine's
// chosen sequence. Grounded on original_source's triggerMaintenance/
// evaluateSchedule (src/solvers/maintenance_heuristic.cpp): scan the
// sequence, and on every interval trigger insert a maintenance operation
// and recompute; repeat until a full scan makes no further insertion
// (triggerMaintenance's "loop while the sequence keeps changing" idiom).
//
// Scoped reduction: the original tracks a firstMaintEdge cursor so a
// repeated scan resumes past operations already known to be maintenance-
// free; this always rescans from the sequence start. Functionally
// equivalent (fetchIdle's TLU state is rebuilt from scratch each scan
// regardless), just without the cursor's scan-skipping optimization.
package maintenance

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// maxScans bounds the outer fixpoint loop (the original relies on the
// sequence eventually stabilizing; this caps it against a pathological
// policy that would otherwise trigger forever).
const maxScans = 64

// NewTrigger builds a maintenance-insertion hook in the shape expected by
// heuristics.WithMaintenanceTrigger: given an instance, its re-entrant
// machine, and a candidate solution, it returns the solution with every
// due maintenance operation inserted and the schedule recomputed around
// it (repairing via a scoped-down repairScheduleOffline if an insertion
// makes the schedule infeasible).
func NewTrigger(mode Mode) func(inst *problem.Instance, reEntrant problem.MachineId, sol *partial.Solution) (*partial.Solution, error) {
	return func(inst *problem.Instance, reEntrant problem.MachineId, sol *partial.Solution) (*partial.Solution, error) {
		return triggerMaintenance(inst, reEntrant, sol, mode)
	}
}

func triggerMaintenance(inst *problem.Instance, reEntrant problem.MachineId, sol *partial.Solution, mode Mode) (*partial.Solution, error) {
	g := inst.Graph()
	if g == nil {
		return nil, fmt.Errorf("maintenance: instance has no attached graph")
	}
	if !inst.IsReEntrantMachine(reEntrant) {
		return nil, ErrNoReEntrantMachine
	}
	policy := inst.MaintenancePolicy()

	for scan := 0; scan < maxScans; scan++ {
		changed, next, err := evaluateSchedule(inst, g, sol, reEntrant, policy, mode)
		if err != nil {
			return nil, err
		}
		sol = next
		if !changed {
			return sol, nil
		}
	}
	return sol, nil
}

// evaluateSchedule performs one scan over reEntrant's chosen sequence,
// inserting at most the first operation whose idle time trips
// checkInterval (mirroring the original's single-trigger-per-call
// behavior, re-driven by triggerMaintenance's outer loop).
func evaluateSchedule(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, reEntrant problem.MachineId, policy problem.MaintenancePolicy, mode Mode) (bool, *partial.Solution, error) {
	seq := sol.MachineSequence(reEntrant)
	if len(seq) < 2 {
		return false, sol, nil
	}

	times := append(paths.PathTimes{}, sol.ASAPST()...)
	tracker := newTLUTracker()

	for i := 1; i < len(seq); i++ {
		prev, curr := seq[i-1], seq[i]
		var maintDuration problem.Delay
		if prev.IsMaintenance() {
			maintDuration = policy.DurationForOp(prev)
		}
		idle, maxIdle, err := fetchIdle(inst, g, times, tracker, i == 1, prev, curr, maintDuration)
		if err != nil {
			return false, nil, err
		}

		maintType, ok := checkInterval(policy, idle, maxIdle, mode)
		if !ok {
			continue
		}
		if idle < policy.MinimumIdle() {
			continue
		}

		asapst := append(paths.PathTimes{}, sol.ASAPST()...)
		next, maintOp, err := insertMaintenance(inst, g, sol, reEntrant, maintType, prev, curr, i, asapst)
		if err != nil {
			return false, nil, err
		}

		newSeq := next.MachineSequence(reEntrant)
		sources := machineSourceVertices(inst, g, reEntrant)
		window := windowVertices(g, newSeq)
		recomputed := append(paths.PathTimes{}, next.ASAPST()...)
		result, err := recomputeSchedule(inst, g, newSeq, recomputed, sources, window)
		if err != nil {
			return false, nil, err
		}
		if result.HasPositiveCycle() {
			repaired, err := repairScheduleOffline(inst, g, next, curr, recomputed)
			if err != nil {
				return false, nil, err
			}
			next = repaired
		} else {
			next.SetASAPST(recomputed)
		}
		next.IncrMaintCount()
		_ = maintOp
		return true, next, nil
	}
	return false, sol, nil
}

// machineSourceVertices returns the machine's source vertex (if any), the
// restart point for a windowed ASAPST recompute.
func machineSourceVertices(inst *problem.Instance, g *cg.Graph, m problem.MachineId) []cg.VertexId {
	if v, ok := g.MachineSource(m); ok {
		return []cg.VertexId{v}
	}
	return nil
}

// windowVertices returns every vertex of sequence, the affected window a
// windowed ASAPST recompute must revisit.
func windowVertices(g *cg.Graph, sequence []problem.Operation) []cg.VertexId {
	window := make([]cg.VertexId, 0, len(sequence))
	for _, op := range sequence {
		if v, err := g.GetVertex(op); err == nil {
			window = append(window, v)
		}
	}
	return window
}
