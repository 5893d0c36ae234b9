// File: fixedorder.go
// Role: Fixed-order permutation flow-shop graph construction (§4.4),
// grounded on original_source's cg::Builder::customOrder
// (src/cg/builder.cpp): one machine-source vertex per machine, intra-job
// precedence edges, inter-job same-machine/re-entrancy-matching edges,
// sequence-independent setup/due-date edges, and (unless the instance is
// out-of-order) pinning edges fixing the input order of every job's first
// operation.
package cgbuilder

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// FixedOrder builds the constraint graph for a fixed-order permutation flow
// shop, visiting jobs in the order given by WithJobOrder (default: the
// instance's output order).
func FixedOrder(inst *problem.Instance, opts ...Option) (*cg.Graph, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	cfg := newBuildConfig(inst, opts...)
	g := cg.New()

	if err := addVerticesAndSources(g, inst, cfg.jobOrder); err != nil {
		return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
	}
	if err := addSequenceIndependentSetupTimes(g, inst); err != nil {
		return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
	}

	for j := range cfg.jobOrder {
		ops, err := inst.JobOperations(cfg.jobOrder[j])
		if err != nil {
			return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
		}
		if err := addIntraJobEdges(g, inst, cfg, ops); err != nil {
			return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
		}
		if j == 0 {
			continue
		}
		if err := addInterJobEdges(g, inst, cfg, ops, j); err != nil {
			return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
		}
	}

	if err := addSequenceIndependentDueDates(g, inst); err != nil {
		return nil, fmt.Errorf("cgbuilder.FixedOrder: %w", err)
	}

	if !inst.IsOutOfOrder() {
		for i := 0; i+1 < len(cfg.jobOrder); i++ {
			opSrc := cg.NewOperation(cfg.jobOrder[i], 0)
			opDst := cg.NewOperation(cfg.jobOrder[i+1], 0)
			vSrc, err := g.GetVertex(opSrc)
			if err != nil {
				return nil, fmt.Errorf("cgbuilder.FixedOrder: pinning edge: %w", err)
			}
			vDst, err := g.GetVertex(opDst)
			if err != nil {
				return nil, fmt.Errorf("cgbuilder.FixedOrder: pinning edge: %w", err)
			}
			if err := g.AddEdge(vSrc, vDst, inst.Query(opSrc, opDst)); err != nil {
				return nil, fmt.Errorf("cgbuilder.FixedOrder: pinning edge: %w", err)
			}
		}
	}

	return g, nil
}

// addVerticesAndSources adds one machine-source vertex per machine, one
// vertex per operation in job-visitation order, and an edge from a
// machine's source to the first visit of each re-entrancy level: the first
// job's operations unconditionally, and for every re-entrant machine the
// first operation encountered whose re-entrancy count equals the machine's
// maximum (its "first duplex" job).
func addVerticesAndSources(g *cg.Graph, inst *problem.Instance, jobOrder []problem.JobId) error {
	for _, m := range inst.Machines() {
		if _, err := g.AddMachineSource(m); err != nil {
			return err
		}
	}

	duplexFound := make(map[problem.MachineId]bool)
	firstJob := true
	for _, j := range jobOrder {
		ops, err := inst.JobOperations(j)
		if err != nil {
			return err
		}
		for _, op := range ops {
			vID, err := g.AddVertex(op)
			if err != nil {
				return err
			}
			m, err := inst.Machine(op)
			if err != nil {
				return err
			}
			machineMax := inst.MachineMaxReEntrancies(m)
			reEntrancies := inst.ReEntranciesForOp(op)

			addSource := false
			if reEntrancies == machineMax && !duplexFound[m] {
				duplexFound[m] = true
				addSource = true
			}

			if firstJob || addSource {
				srcV, ok := g.MachineSource(m)
				if ok {
					// A machine source carries no operation and thus no
					// setup/processing time of its own: the edge weight is 0.
					if err := g.AddEdge(srcV, vID, 0); err != nil {
						return err
					}
				}
			}
		}
		firstJob = false
	}
	return nil
}

// addIntraJobEdges chains a job's own operations in sequence, skipping any
// pair already wired by an explicit sequence-independent setup time.
func addIntraJobEdges(g *cg.Graph, inst *problem.Instance, cfg buildConfig, ops []problem.Operation) error {
	for i := 1; i < len(ops); i++ {
		op1, op2 := ops[i-1], ops[i]
		v1, err := g.GetVertex(op1)
		if err != nil {
			return err
		}
		v2, err := g.GetVertex(op2)
		if err != nil {
			return err
		}
		if g.HasEdge(v1, v2) {
			continue
		}
		weight := inst.Query(op1, op2)
		if err := g.AddEdge(v1, v2, weight); err != nil {
			return err
		}
		cfg.logger.Debug().Stringer("op1", op1).Stringer("op2", op2).Int64("weight", int64(weight)).Msg("intra-job edge")
	}
	return nil
}

// addInterJobEdges connects the current job's operations to the nearest
// preceding job sharing the same machine and re-entrancy level, enforcing
// that consecutive jobs on the same machine are always linked and that a
// re-entrant machine's plexity lines up between the two jobs.
func addInterJobEdges(g *cg.Graph, inst *problem.Instance, cfg buildConfig, ops []problem.Operation, jobIndex int) error {
	jobOrder := cfg.jobOrder
	machines := inst.Machines()
	jobID := jobOrder[jobIndex]
	firstReEntrant, hasFirstReEntrant := inst.FirstReEntrantID()

	for _, op := range ops {
		mID, err := inst.Machine(op)
		if err != nil {
			return err
		}
		isFirstMachineOp := len(machines) > 0 && mID == machines[0]
		machineOps := inst.MachineOperations(mID)
		isLastOpInMachine := len(machineOps) > 0 && op.Op == machineOps[len(machineOps)-1]
		reEntrancies := inst.ReEntranciesForOp(op)

		for j2 := 1; j2 <= jobIndex; j2++ {
			jobID2 := jobOrder[jobIndex-j2]
			op2 := cg.NewOperation(jobID2, op.Op)
			if !inst.IsValid(op2) {
				continue
			}
			mID2, err := inst.Machine(op2)
			if err != nil {
				return err
			}
			if mID != mID2 {
				continue
			}

			isPreviousJob := j2 == 1
			mustConnect := isPreviousJob && isLastOpInMachine

			if inst.ReEntranciesForOp(op2) != reEntrancies && !mustConnect {
				continue
			}
			if isFirstMachineOp && hasFirstReEntrant &&
				inst.ReEntrancies(jobID, firstReEntrant) != inst.ReEntrancies(jobID2, firstReEntrant) {
				continue
			}

			v1, err := g.GetVertex(op2)
			if err != nil {
				return err
			}
			v2, err := g.GetVertex(op)
			if err != nil {
				return err
			}
			if err := g.AddEdge(v1, v2, inst.Query(op2, op)); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// addSequenceIndependentSetupTimes wires every explicit (src, dst) entry of
// the instance's setup-independent table as src's processing time plus the
// declared setup.
func addSequenceIndependentSetupTimes(g *cg.Graph, inst *problem.Instance) error {
	for key, setupTime := range inst.SetupTimesIndep() {
		opSrc := cg.NewOperation(key.Src.Job, key.Src.Op)
		opDst := cg.NewOperation(key.Dst.Job, key.Dst.Op)
		vSrc, err := g.GetVertex(opSrc)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMissingOperation, err)
		}
		vDst, err := g.GetVertex(opDst)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMissingOperation, err)
		}
		if err := g.AddEdge(vSrc, vDst, inst.ProcessingTime(opSrc)+setupTime); err != nil {
			return err
		}
	}
	return nil
}

// addSequenceIndependentDueDates wires every explicit (src, dst) entry of
// the instance's due-date-independent table as a negative-weight deadline
// edge src -> dst of weight -dueDate (src starts at most dueDate after
// dst), rejecting any entry whose src does not come after its dst in job
// or operation order (src.Job <= dst.Job and src.Op <= dst.Op).
func addSequenceIndependentDueDates(g *cg.Graph, inst *problem.Instance) error {
	for key, dueDate := range inst.DueDatesIndep() {
		if key.Src.Job <= key.Dst.Job && key.Src.Op <= key.Dst.Op {
			return fmt.Errorf("%w: %v -> %v", ErrInfeasibleDueDate, key.Src, key.Dst)
		}
		opSrc := cg.NewOperation(key.Src.Job, key.Src.Op)
		opDst := cg.NewOperation(key.Dst.Job, key.Dst.Op)
		vSrc, err := g.GetVertex(opSrc)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMissingOperation, err)
		}
		vDst, err := g.GetVertex(opDst)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMissingOperation, err)
		}
		if err := g.AddEdge(vSrc, vDst, -dueDate); err != nil {
			return err
		}
	}
	return nil
}
