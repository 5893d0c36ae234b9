// File: resumable.go
// Role: the resumable cocktail variant (§4.10), grounded on
// original_source's src/solvers/cocktail_resumable.cpp /
// include/fms/solvers/cocktail_resumable.hpp: each module's previous
// round's local solution is kept and handed back to the local solver as
// a warm-start seed, so an incremental solver does not restart cold
// every round. The original caches an opaque per-solver SolverData
// blob (e.g. a DD solver's still-open vertex queue); this codebase's
// solvers expose no such resumable state, so the scoped warm-start here
// is the previous round's full partial.Solution, the only concretely
// available carryover.
package modular

import (
	"context"
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// ResumableLocalSolver is a LocalSolver that additionally accepts the
// previous round's solution for this module as a warm-start seed (nil on
// the first round).
type ResumableLocalSolver func(ctx context.Context, inst *problem.Instance, seed *partial.Solution) (*partial.Solution, error)

// SolveCocktailResumable runs the same forward/backward sweep as
// SolveCocktail, but calls solver with each module's previous round's
// solution so an incremental local solver can resume rather than restart.
func SolveCocktailResumable(ctx context.Context, pl *ProductionLine, solver ResumableLocalSolver, opts ...Option) (Result, error) {
	cache := make(map[ModuleId]*partial.Solution, len(pl.Modules()))
	wrapped := func(ctx context.Context, inst *problem.Instance) (*partial.Solution, error) {
		var id ModuleId
		found := false
		for _, m := range pl.Modules() {
			if m.Instance == inst {
				id, found = m.ID, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("modular: resumable solver called with an instance not in the production line")
		}
		sol, err := solver(ctx, inst, cache[id])
		if err != nil {
			return nil, err
		}
		cache[id] = sol
		return sol, nil
	}

	allOpts := append([]Option{}, opts...)
	allOpts = append(allOpts, WithLocalSolver(wrapped))
	return SolveCocktail(ctx, pl, allOpts...)
}
