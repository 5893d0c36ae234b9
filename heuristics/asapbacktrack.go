// File: asapbacktrack.go
// Role: the ASAP-with-backtracking heuristic (§4.6), grounded on
// original_source's fms::solvers::AsapBacktrack (include/fms/solvers/
// asap_backtrack.hpp, src/solvers/asap_backtrack.cpp): greedily inserts
// each re-entrant operation as early as possible, and on failure backtracks
// one operation and retries from the next candidate position, bounded by a
// wall-clock deadline scaled by the job count.
package heuristics

import (
	"context"
	"time"

	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// SolveASAPBacktrack runs the ASAP-backtracking heuristic. timeout bounds
// the search per job scheduled (mirroring the original's
// args.timeOut * jobs.size()); a non-positive timeout disables the bound.
func SolveASAPBacktrack(ctx context.Context, inst *problem.Instance, timeout time.Duration, opts ...Option) (*partial.Solution, error) {
	cfg := newConfig(opts...)
	g := inst.Graph()
	if g == nil {
		return nil, partial.ErrNoGraph
	}

	reentrants := inst.ReEntrantMachines()
	if len(reentrants) == 0 {
		return nil, ErrNoReEntrantMachine
	}
	reentrant := reentrants[0]
	if len(inst.MachineOperations(reentrant)) > 2 {
		return nil, ErrUnsupportedMultiplexity
	}

	asapst := paths.InitializeASAPST(g, nil, true)
	seq, err := createInitialSequence(inst, reentrant)
	if err != nil {
		return nil, err
	}

	jobs := inst.JobsOutput()
	var toSchedule []problem.Operation
	for i := 0; i+1 < len(jobs); i++ {
		jobOps := inst.JobOperationsOnMachine(jobs[i], reentrant)
		toSchedule = append(toSchedule, jobOps[1:]...)
	}

	totalOps := len(toSchedule) + len(seq)
	lastInsertionPoints := make([]int, len(toSchedule))

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout * time.Duration(len(jobs)))
	}

	currentOpIdx := 0
	for currentOpIdx < len(toSchedule) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		op := toSchedule[currentOpIdx]
		insertionPoint, newSeq, ok := scheduleOneOpASAP(inst, op, seq, lastInsertionPoints[currentOpIdx], asapst)
		if ok {
			seq = newSeq
			lastInsertionPoints[currentOpIdx] = insertionPoint
			currentOpIdx++
			if currentOpIdx < len(toSchedule) {
				lastInsertionPoints[currentOpIdx] = insertionPoint + 1
			}
			continue
		}

		if currentOpIdx == 0 {
			return nil, ErrNoFeasibleOption
		}
		currentOpIdx--
		removeIdx := lastInsertionPoints[currentOpIdx]
		if removeIdx < 0 || removeIdx >= len(seq) {
			return nil, ErrNoFeasibleOption
		}
		seq = append(append(partial.Sequence{}, seq[:removeIdx]...), seq[removeIdx+1:]...)
		lastInsertionPoints[currentOpIdx]++
	}

	sol, err := solutionFromSequence(inst, reentrant, seq)
	if err != nil {
		return nil, err
	}
	if sol.ASAPST() == nil || len(seq) != totalOps {
		return nil, ErrNoFeasibleOption
	}

	if cfg.maintenance != nil {
		sol, err = cfg.maintenance(inst, reentrant, sol)
		if err != nil {
			return nil, err
		}
	}
	if err := sol.AddInferredInputSequence(inst); err != nil {
		return nil, err
	}
	return sol, nil
}

// findInsertionPointASAP returns the earliest candidate index, starting
// from lastInsertionPoint, at which op could be inserted: immediately
// after another first-job operation, or just before the first sequence
// entry whose job exceeds op's job (fixed-order jobs are scheduled in
// increasing job-id order on the re-entrant machine).
func findInsertionPointASAP(inst *problem.Instance, sequence partial.Sequence, op problem.Operation, lastInsertionPoint int) int {
	jobs := inst.JobsOutput()
	if len(jobs) == 0 {
		return len(sequence)
	}
	firstJob := jobs[0]

	for i := lastInsertionPoint; i < len(sequence); i++ {
		curr := sequence[i]
		if curr.Job == firstJob && op.Job == firstJob {
			return i + 1
		}
		if curr.Job > op.Job {
			return i
		}
	}
	return len(sequence)
}

// scheduleOneOpASAP tries inserting op at every position from the
// earliest feasible candidate onward, accepting the first that keeps the
// constraint graph acyclic.
func scheduleOneOpASAP(inst *problem.Instance, op problem.Operation, sequence partial.Sequence, lastInsertionPoint int, asapst paths.PathTimes) (int, partial.Sequence, bool) {
	insertionPoint := findInsertionPointASAP(inst, sequence, op, lastInsertionPoint)

	for i := insertionPoint; i <= len(sequence); i++ {
		candidate := insertAt(sequence, i, op)

		reentrant := inst.ReEntrantMachines()[0]
		sol := partial.New(partial.MachinesSequences{reentrant: candidate}, nil)
		edges, err := sol.GetAllAndInferredEdges(inst)
		if err != nil {
			return 0, nil, false
		}

		trial := append(paths.PathTimes(nil), asapst...)
		paths.InitializeASAPSTInto(inst.Graph(), trial, nil, true)
		result, err := paths.ComputeASAPSTWithEdges(inst.Graph(), trial, edges)
		if err != nil {
			return 0, nil, false
		}
		if !result.HasPositiveCycle() {
			copy(asapst, trial)
			return i, candidate, true
		}
	}
	return 0, nil, false
}
