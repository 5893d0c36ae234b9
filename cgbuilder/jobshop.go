// File: jobshop.go
// Role: Free-order job-shop graph construction (SPEC_FULL.md supplemented
// feature, grounded on original_source's cg::Builder::jobShop): order
// between jobs is not fixed, every job chains into a shared terminal
// vertex, absolute deadlines attach as negative edges back toward the
// machine sources, and sequence-independent due dates attach as negative
// edges between their two operations.
package cgbuilder

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// JobShop builds the constraint graph for a free job-order instance. Unlike
// FixedOrder, job visitation order does not affect the resulting graph.
func JobShop(inst *problem.Instance, opts ...Option) (*cg.Graph, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	g := cg.New()

	for _, m := range inst.Machines() {
		if _, err := g.AddMachineSource(m); err != nil {
			return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
		}
	}

	for jobID, ops := range inst.Jobs() {
		var prevOp problem.Operation
		var prevV cg.VertexId
		hasPrev := false

		for _, op := range ops {
			currV, err := g.AddVertex(op)
			if err != nil {
				return nil, fmt.Errorf("cgbuilder.JobShop: job %d: %w", jobID, err)
			}
			if hasPrev {
				if err := g.AddEdge(prevV, currV, inst.Query(prevOp, op)); err != nil {
					return nil, fmt.Errorf("cgbuilder.JobShop: job %d: %w", jobID, err)
				}
			}
			prevV, prevOp, hasPrev = currV, op, true
		}
	}

	terminal, err := g.AddTerminal()
	if err != nil {
		return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
	}
	// A placeholder operation identifying the terminal vertex for Query's
	// purposes only; TerminalJobID never appears in a real instance's
	// machine mapping, so SetupTime naturally treats it as invalid (no
	// sequence-dependent setup applies when transitioning into the sink).
	terminalOp := cg.NewOperation(cg.TerminalJobID, 0)
	for jobID, ops := range inst.Jobs() {
		if len(ops) == 0 {
			continue
		}
		lastOp := ops[len(ops)-1]
		v, err := g.GetVertex(lastOp)
		if err != nil {
			return nil, fmt.Errorf("cgbuilder.JobShop: job %d: %w", jobID, err)
		}
		if err := g.AddEdge(v, terminal, inst.Query(lastOp, terminalOp)); err != nil {
			return nil, fmt.Errorf("cgbuilder.JobShop: job %d: %w", jobID, err)
		}
	}

	if err := addSequenceIndependentDueDatesJobShop(g, inst); err != nil {
		return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
	}

	for jobID, dueDate := range inst.AbsoluteDueDates() {
		ops, err := inst.JobOperations(jobID)
		if err != nil || len(ops) == 0 {
			return nil, fmt.Errorf("cgbuilder.JobShop: absolute due date for job %d: %w", jobID, ErrMissingOperation)
		}
		lastOp := ops[len(ops)-1]
		v, err := g.GetVertex(lastOp)
		if err != nil {
			return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
		}
		for _, m := range inst.Machines() {
			srcV, ok := g.MachineSource(m)
			if !ok {
				continue
			}
			if err := g.AddEdge(v, srcV, -dueDate); err != nil {
				return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
			}
		}
	}

	if inst.ShopType() != problem.ShopFixedOrder {
		return g, nil
	}

	// Fixed-order job shop: pin same-level operations across consecutive
	// jobs in output order (operations 0 is the per-job pivot and is left
	// unconstrained, matching the original's mixed-plexity carve-out).
	jobsOutput := inst.JobsOutput()
	for i := 1; i < len(jobsOutput); i++ {
		ops, err := inst.JobOperations(jobsOutput[i])
		if err != nil {
			return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
		}
		for _, op := range ops {
			if op.Op == 0 {
				continue
			}
			opSrc := cg.NewOperation(jobsOutput[i-1], op.Op)
			opDst := cg.NewOperation(jobsOutput[i], op.Op)
			if !inst.IsValid(opSrc) || !inst.IsValid(opDst) {
				continue
			}
			vSrc, err := g.GetVertex(opSrc)
			if err != nil {
				return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
			}
			vDst, err := g.GetVertex(opDst)
			if err != nil {
				return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
			}
			if err := g.AddEdge(vSrc, vDst, inst.Query(opSrc, opDst)); err != nil {
				return nil, fmt.Errorf("cgbuilder.JobShop: %w", err)
			}
		}
	}

	return g, nil
}

func addSequenceIndependentDueDatesJobShop(g *cg.Graph, inst *problem.Instance) error {
	for key, dueDate := range inst.DueDatesIndep() {
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
