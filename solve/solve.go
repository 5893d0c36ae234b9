// File: solve.go
// Role: the top-level solver dispatcher (spec.md §9's "Dynamic dispatch on
// solver family"), grounded on original_source's fms::cli::run/solveShop
// (include/fms/cli/command_line.hpp's dispatch over AlgorithmType) and on
// how cmd/fspscheduler is meant to call down into one package rather than
// importing every solver package directly. This is also where spec.md
// §8's golden seed scenarios are re-asserted as table tests
// (solve_test.go), matching the CLI path an end user actually drives.
package solve

import (
	"context"
	"fmt"
	"time"

	"github.com/tue-ees/forpfsspsd-scheduler/bnb"
	"github.com/tue-ees/forpfsspsd-scheduler/dd"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Result unifies every solver family's outcome into one shape the CLI's
// report layer can serialize regardless of which algorithm ran.
type Result struct {
	Algorithm AlgorithmType

	// Solution is the single best schedule found. For MDBHCS it is the
	// frontier member with the smallest makespan; Solutions carries the
	// full frontier.
	Solution  *partial.Solution
	Solutions []*partial.Solution

	Makespan   problem.Delay
	LowerBound problem.Delay

	// Optimal is true only for BranchAndBound/DD runs that exhausted
	// their search space rather than stopping on a time or iteration
	// budget.
	Optimal bool
	// TimedOut reports whether ctx was already done (or became done
	// during a cancellation-aware solver's run).
	TimedOut bool

	// Anytime carries DD's incumbent-improvement trace; empty for every
	// other algorithm.
	Anytime []dd.AnytimeSample
}

// Solve dispatches inst to the requested algorithm and returns a unified
// Result. ctx governs cancellation for the algorithms that support it
// (ASAPBacktrack, BranchAndBound, DD); BHCS/MDBHCS/MNEH/Sequence run to
// completion or error, matching the teacher packages they wrap.
func Solve(ctx context.Context, inst *problem.Instance, algo AlgorithmType, opts ...Option) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{Algorithm: algo, TimedOut: true}, fmt.Errorf("%w: %v", ErrTimeOut, ctx.Err())
	default:
	}

	cfg := newConfig(opts...)

	switch algo {
	case BHCS:
		return solveBHCS(inst, cfg)
	case MDBHCS:
		return solveMDBHCS(inst, cfg)
	case MNEH:
		return solveMNEH(inst, cfg)
	case ASAPBacktrack:
		return solveASAPBacktrack(ctx, inst, cfg)
	case BranchAndBound:
		return solveBranchAndBound(ctx, inst, cfg)
	case DD:
		return solveDD(ctx, inst, cfg)
	case Sequence:
		return solveSequence(inst, cfg)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algo)
	}
}

func solveBHCS(inst *problem.Instance, cfg config) (Result, error) {
	sol, err := heuristics.Solve(inst, cfg.heuristicsOptions()...)
	if err != nil {
		return Result{Algorithm: BHCS}, fmt.Errorf("solve: bhcs: %w", err)
	}
	makespan, err := sol.RealMakespan(inst)
	if err != nil {
		return Result{Algorithm: BHCS}, fmt.Errorf("solve: bhcs: %w", err)
	}
	return Result{Algorithm: BHCS, Solution: sol, Makespan: makespan}, nil
}

func solveMDBHCS(inst *problem.Instance, cfg config) (Result, error) {
	frontier, err := heuristics.SolveParetoFrontier(inst, cfg.paretoOptions()...)
	if err != nil {
		return Result{Algorithm: MDBHCS}, fmt.Errorf("solve: mdbhcs: %w", err)
	}
	if len(frontier) == 0 {
		return Result{Algorithm: MDBHCS}, ErrNoSolution
	}

	best := frontier[0]
	bestMakespan, err := best.RealMakespan(inst)
	if err != nil {
		return Result{Algorithm: MDBHCS}, fmt.Errorf("solve: mdbhcs: %w", err)
	}
	for _, sol := range frontier[1:] {
		makespan, err := sol.RealMakespan(inst)
		if err != nil {
			return Result{Algorithm: MDBHCS}, fmt.Errorf("solve: mdbhcs: %w", err)
		}
		if makespan < bestMakespan {
			best, bestMakespan = sol, makespan
		}
	}
	return Result{Algorithm: MDBHCS, Solution: best, Solutions: frontier, Makespan: bestMakespan}, nil
}

func solveMNEH(inst *problem.Instance, cfg config) (Result, error) {
	sol, err := heuristics.SolveMNEH(inst, cfg.heuristicsOptions()...)
	if err != nil {
		return Result{Algorithm: MNEH}, fmt.Errorf("solve: mneh: %w", err)
	}
	makespan, err := sol.RealMakespan(inst)
	if err != nil {
		return Result{Algorithm: MNEH}, fmt.Errorf("solve: mneh: %w", err)
	}
	return Result{Algorithm: MNEH, Solution: sol, Makespan: makespan}, nil
}

func solveASAPBacktrack(ctx context.Context, inst *problem.Instance, cfg config) (Result, error) {
	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			timeout = remaining
		}
	}
	sol, err := heuristics.SolveASAPBacktrack(ctx, inst, timeout, cfg.heuristicsOptions()...)
	if err != nil {
		return Result{Algorithm: ASAPBacktrack, TimedOut: ctx.Err() != nil}, fmt.Errorf("solve: asap: %w", err)
	}
	makespan, err := sol.RealMakespan(inst)
	if err != nil {
		return Result{Algorithm: ASAPBacktrack}, fmt.Errorf("solve: asap: %w", err)
	}
	return Result{Algorithm: ASAPBacktrack, Solution: sol, Makespan: makespan, TimedOut: ctx.Err() != nil}, nil
}

func solveBranchAndBound(ctx context.Context, inst *problem.Instance, cfg config) (Result, error) {
	result, err := bnb.Solve(ctx, inst, cfg.bnbOptions()...)
	if err != nil {
		return Result{Algorithm: BranchAndBound}, fmt.Errorf("solve: bnb: %w", err)
	}
	return Result{
		Algorithm:  BranchAndBound,
		Solution:   result.Solution,
		Makespan:   result.Makespan,
		LowerBound: result.LowerBound,
		Optimal:    result.Optimal,
		TimedOut:   !result.Optimal && ctx.Err() != nil,
	}, nil
}

func solveDD(ctx context.Context, inst *problem.Instance, cfg config) (Result, error) {
	result, err := dd.Solve(ctx, inst, cfg.ddOptions()...)
	if err != nil {
		return Result{Algorithm: DD}, fmt.Errorf("solve: dd: %w", err)
	}
	return Result{
		Algorithm:  DD,
		Solution:   result.Solution,
		Makespan:   result.Makespan,
		LowerBound: result.LowerBound,
		Optimal:    result.Optimal,
		TimedOut:   !result.Optimal && ctx.Err() != nil,
		Anytime:    result.Anytime,
	}, nil
}

// solveSequence rebuilds a Solution directly from the caller-supplied
// machine sequences rather than searching, recomputing ASAPST over the
// edges those sequences imply. Grounded on partial.edgesFromSequence's
// documented contract and paths.ComputeASAPSTWithEdges's add-then-remove
// shape, which exists precisely so a caller-owned sequence can be
// evaluated without committing it to the instance's graph.
func solveSequence(inst *problem.Instance, cfg config) (Result, error) {
	if len(cfg.sequenceSeed) == 0 {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w: no sequence seed supplied", ErrNoSolution)
	}
	g := inst.Graph()
	if g == nil {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w", partial.ErrNoGraph)
	}

	sol := partial.New(cfg.sequenceSeed, nil)
	edges, err := sol.GetAllChosenEdges(inst)
	if err != nil {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w", err)
	}

	times := paths.InitializeASAPST(g, nil, true)
	result, err := paths.ComputeASAPSTWithEdges(g, times, edges)
	if err != nil {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w", err)
	}
	if result.HasPositiveCycle() {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w: supplied sequence is infeasible", ErrNoSolution)
	}
	sol.SetASAPST(times)

	makespan, err := sol.RealMakespan(inst)
	if err != nil {
		return Result{Algorithm: Sequence}, fmt.Errorf("solve: sequence: %w", err)
	}
	return Result{Algorithm: Sequence, Solution: sol, Makespan: makespan}, nil
}
