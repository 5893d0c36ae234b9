// File: cocktail.go
// Role: the cocktail constraint-propagation algorithm (§4.10), grounded
// on original_source's src/solvers/cocktail_line_solver.cpp
// (CocktailLineSolver::singleIteration/solve): alternates a forward
// sweep (propagating each module's output bounds to the next module's
// input) with a backward sweep (propagating each module's input bounds
// to the previous module's output); the backward sweep's first module is
// the forward sweep's last (skipped, since it was already solved this
// round), and upper-bound propagation only turns on once a prior round's
// lower-bound sweep has already converged, mirroring convergedLowerBound.
package modular

import (
	"context"
	"fmt"
)

// SolveCocktail runs the cocktail algorithm over pl.
func SolveCocktail(ctx context.Context, pl *ProductionLine, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)
	hist := NewHistory(cfg.historyCapacity)
	modules := pl.Modules()
	convergedLowerBound := false

	for iteration := uint64(0); iteration < cfg.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return Result{History: hist, Iterations: iteration}, fmt.Errorf("%w: %v", ErrTimeOut, ctx.Err())
		default:
		}

		upperBound := convergedLowerBound
		solutions := ModulesSolutions{}
		roundBounds := GlobalBounds{}

		// Forward sweep: solve every module once, propagate output bounds
		// to the next module's input.
		for _, m := range modules {
			sol, err := cfg.localSolver(ctx, m.Instance)
			if err != nil {
				return Result{History: hist, Iterations: iteration}, fmt.Errorf("%w: module %d: %v", ErrLocalScheduler, m.ID, err)
			}
			solutions[m.ID] = sol
			bounds := getBounds(m, asapstLookup(m, sol), upperBound, Output)
			roundBounds[m.ID] = bounds
			if cfg.selfBounds {
				_ = m.AddOutputBounds(bounds.Out)
			}
			if pl.HasNextModule(m.ID) {
				boundary, _ := pl.BoundaryAfter(m.ID)
				nextID, _ := pl.NextModuleId(m.ID)
				next, _ := pl.Module(nextID)
				_ = next.AddInputBounds(boundary.translateToDestination(bounds.Out))
			}
			cfg.logger.Debug().Int("module", int(m.ID)).Uint64("iteration", iteration).Msg("modular: cocktail forward sweep")
		}

		// Backward sweep: re-solve every module except the last (it was
		// just solved forward), propagate input bounds to the previous
		// module's output, and track whether every translated bound
		// matches what the previous module already had.
		converged := true
		for i := len(modules) - 1; i >= 0; i-- {
			cur := modules[i]
			sol := solutions[cur.ID]
			if i < len(modules)-1 {
				var err error
				if sol, err = cfg.localSolver(ctx, cur.Instance); err != nil {
					return Result{History: hist, Iterations: iteration}, fmt.Errorf("%w: module %d: %v", ErrLocalScheduler, cur.ID, err)
				}
				solutions[cur.ID] = sol
			}
			bounds := getBounds(cur, asapstLookup(cur, sol), upperBound, Both)
			roundBounds[cur.ID] = bounds
			if cfg.selfBounds {
				_ = cur.AddInputBounds(bounds.In)
				_ = cur.AddOutputBounds(bounds.Out)
			}

			if i > 0 {
				prev := modules[i-1]
				boundary, _ := pl.BoundaryAfter(prev.ID)
				translated := boundary.translateToSource(bounds.In)
				if !isConverged(translated, prev.OutputBounds) {
					converged = false
				}
				_ = prev.AddOutputBounds(translated)
			}
			cfg.logger.Debug().Int("module", int(cur.ID)).Uint64("iteration", iteration).Msg("modular: cocktail backward sweep")
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

		if converged && convergedLowerBound {
			merged, err := mergeSolutions(pl, solutions)
			if err != nil {
				return Result{History: hist, Iterations: iteration + 1}, err
			}
			return Result{Solution: merged, Converged: true, Iterations: iteration + 1, History: hist}, nil
		}
		convergedLowerBound = convergedLowerBound || converged
	}

	return Result{History: hist, Iterations: cfg.maxIterations}, ErrNoConvergence
}
