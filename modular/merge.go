// File: merge.go
// Role: ProductionLineSolution and mergeSolutions (§4.10, §6.3), grounded
// on original_source's fms::solvers::ProductionLineSolution (include/fms/
// solvers/production_line_solution.hpp) and BroadcastLineSolver::mergeSolutions:
// a feasible global solution is just the per-module solutions kept
// together, keyed by module id, plus the line's overall makespan (the
// last module's makespan, since modules run in series).
package modular

import "github.com/tue-ees/forpfsspsd-scheduler/problem"

// ProductionLineSolution is the modular propagator's result: one
// feasible solution per module, and the line's overall makespan.
type ProductionLineSolution struct {
	Modules  ModulesSolutions
	Makespan problem.Delay
}

// mergeSolutions bundles every module's chosen solution into a
// ProductionLineSolution, taking the overall makespan as the last
// module's makespan (series composition: the line finishes when its
// final module finishes).
func mergeSolutions(pl *ProductionLine, solutions ModulesSolutions) (ProductionLineSolution, error) {
	result := ProductionLineSolution{Modules: solutions}

	last, err := pl.Module(pl.LastModuleId())
	if err != nil {
		return ProductionLineSolution{}, err
	}
	sol, ok := solutions[last.ID]
	if !ok {
		return result, nil
	}
	makespan, err := sol.RealMakespan(last.Instance)
	if err != nil {
		return ProductionLineSolution{}, err
	}
	result.Makespan = makespan
	return result, nil
}
