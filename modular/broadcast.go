// File: broadcast.go
// Role: the broadcast constraint-propagation algorithm (§4.10), grounded
// on original_source's include/fms/solvers/broadcast_line_solver.hpp: in
// each round, every module's local scheduler runs independently against
// its currently known input bounds; the resulting output bounds are
// translated across each boundary into the neighbor's input/output
// bounds; and the round converges when every translated bound matches
// what the neighbor already had.
package modular

import (
	"context"
	"fmt"
)

// Result reports the outcome of a modular Solve run.
type Result struct {
	Solution   ProductionLineSolution
	Converged  bool
	Iterations uint64
	History    *History
}

// SolveBroadcast runs the broadcast algorithm over pl.
func SolveBroadcast(ctx context.Context, pl *ProductionLine, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)
	hist := NewHistory(cfg.historyCapacity)
	modules := pl.Modules()

	for iteration := uint64(0); iteration < cfg.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return Result{History: hist, Iterations: iteration}, fmt.Errorf("%w: %v", ErrTimeOut, ctx.Err())
		default:
		}

		solutions := ModulesSolutions{}
		roundBounds := GlobalBounds{}
		for _, m := range modules {
			sol, err := cfg.localSolver(ctx, m.Instance)
			if err != nil {
				return Result{History: hist, Iterations: iteration}, fmt.Errorf("%w: module %d: %v", ErrLocalScheduler, m.ID, err)
			}
			solutions[m.ID] = sol
			bounds := getBounds(m, asapstLookup(m, sol), true, Both)
			roundBounds[m.ID] = bounds
			if cfg.selfBounds {
				_ = m.AddInputBounds(bounds.In)
				_ = m.AddOutputBounds(bounds.Out)
			}
			cfg.logger.Debug().Int("module", int(m.ID)).Uint64("iteration", iteration).Msg("modular: broadcast local solve")
		}

		converged := true
		for _, m := range modules {
			if pl.HasNextModule(m.ID) {
				boundary, _ := pl.BoundaryAfter(m.ID)
				nextID, _ := pl.NextModuleId(m.ID)
				next, _ := pl.Module(nextID)
				translated := boundary.translateToDestination(roundBounds[m.ID].Out)
				if !isConverged(translated, next.InputBounds) {
					converged = false
				}
				_ = next.AddInputBounds(translated)
			}
			if pl.HasPrevModule(m.ID) {
				prevID, _ := pl.PrevModuleId(m.ID)
				boundary, _ := pl.BoundaryAfter(prevID)
				prev, _ := pl.Module(prevID)
				translated := boundary.translateToSource(roundBounds[m.ID].In)
				if !isConverged(translated, prev.OutputBounds) {
					converged = false
				}
				_ = prev.AddOutputBounds(translated)
			}
		}

		if cfg.storeBounds || cfg.storeSequence {
			entry := HistoryEntry{}
			if cfg.storeSequence {
				entry.Solutions = solutions
			}
			if cfg.storeBounds {
				entry.Bounds = roundBounds
			}
			hist.Append(entry)
		}

		if converged {
			merged, err := mergeSolutions(pl, solutions)
			if err != nil {
				return Result{History: hist, Iterations: iteration + 1}, err
			}
			return Result{Solution: merged, Converged: true, Iterations: iteration + 1, History: hist}, nil
		}
	}

	return Result{History: hist, Iterations: cfg.maxIterations}, ErrNoConvergence
}
