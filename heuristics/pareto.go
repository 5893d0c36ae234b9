// File: pareto.go
// Role: the multi-dimensional (Pareto) heuristic (§4.6), grounded on
// original_source's fms::solvers::ParetoHeuristic (include/fms/solvers/
// pareto_heuristic.hpp, src/solvers/pareto_heuristic.cpp): instead of
// keeping a single running solution, BHCS's per-operation option search is
// run against every solution in a generation, the best-ranked feasible
// option of each solution is kept (its other feasible options are not),
// and `simpleCull` (pareto_cull.hpp) prunes the generation down to its
// Pareto-optimal frontier under Solution.LessEq before the next operation
// is scheduled.
package heuristics

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// WithMaxPartialSolutions caps how many partial solutions a generation is
// reduced to before each round, mirroring args.maxPartialSolutions.
func WithMaxPartialSolutions(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("heuristics: WithMaxPartialSolutions requires a positive count")
		}
		c.maxPartialSolutions = n
	}
}

// SolveParetoFrontier runs the multi-dimensional heuristic, returning the
// Pareto-optimal frontier of complete solutions found after inserting
// every re-entrant operation.
func SolveParetoFrontier(inst *problem.Instance, opts ...Option) ([]*partial.Solution, error) {
	cfg := newConfig(opts...)
	g := inst.Graph()
	if g == nil {
		return nil, fmt.Errorf("heuristics: %w", partial.ErrNoGraph)
	}

	reentrants := inst.ReEntrantMachines()
	if len(reentrants) == 0 {
		return nil, ErrNoReEntrantMachine
	}
	reentrant := reentrants[0]
	if len(inst.MachineOperations(reentrant)) > 2 {
		return nil, ErrUnsupportedMultiplexity
	}

	times := paths.InitializeASAPST(g, nil, true)
	result := paths.ComputeASAPST(g, times)
	if result.HasPositiveCycle() {
		return nil, fmt.Errorf("heuristics: input graph is infeasible")
	}

	initialSeq, err := createInitialSequence(inst, reentrant)
	if err != nil {
		return nil, err
	}
	seed := partial.New(partial.MachinesSequences{reentrant: initialSeq}, times)
	generation := []*partial.Solution{seed}

	jobs := inst.JobsOutput()
	for i := 0; i+1 < len(jobs); i++ {
		jobOps := inst.JobOperationsOnMachine(jobs[i], reentrant)
		for k := 1; k < len(jobOps); k++ {
			generation, err = scheduleOneOperationPareto(inst, g, generation, jobOps[k], reentrant, cfg)
			if err != nil {
				return nil, err
			}
		}
	}

	for i, sol := range generation {
		if cfg.maintenance != nil {
			sol, err = cfg.maintenance(inst, reentrant, sol)
			if err != nil {
				return nil, err
			}
		}
		if err := sol.AddInferredInputSequence(inst); err != nil {
			return nil, err
		}
		generation[i] = sol
	}
	return generation, nil
}

// reduceGeneration keeps at most maxPartialSolutions solutions, favoring
// the lowest real makespan. maxPartialSolutions <= 0 disables the cap.
//
// Informed inference: the original's EnvironmentalSelectionOperator::
// reduce is declared in environmental_selection_operator.hpp but its
// implementation file is absent from the retrieved original_source tree
// (confirmed by directory listing, mirroring partial/edges.go's
// utils.cpp gap) — this ranks by makespan as the simplest selection
// pressure consistent with the heuristic's goal of minimizing makespan.
func reduceGeneration(inst *problem.Instance, generation []*partial.Solution, maxPartialSolutions int) []*partial.Solution {
	if maxPartialSolutions <= 0 || len(generation) <= maxPartialSolutions {
		return generation
	}
	sorted := append([]*partial.Solution{}, generation...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			mi, _ := sorted[j].RealMakespan(inst)
			mj, _ := sorted[j-1].RealMakespan(inst)
			if mi >= mj {
				break
			}
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted[:maxPartialSolutions]
}

// simpleCull prunes solutions dominated (per Solution.LessEq) by any other
// solution in the set, grounded on pareto_cull.hpp's simple_cull.
func simpleCull(solutions []*partial.Solution) []*partial.Solution {
	undecided := append([]*partial.Solution{}, solutions...)
	var pareto []*partial.Solution

	for len(undecided) > 0 {
		candidate := undecided[0]
		undecided = undecided[1:]

		i := 0
		for i < len(undecided) {
			other := undecided[i]
			switch {
			case candidate.LessEq(other):
				undecided = append(undecided[:i], undecided[i+1:]...)
			case other.LessEq(candidate):
				undecided = append(undecided[:i], undecided[i+1:]...)
				candidate = other
				i = 0
			default:
				i++
			}
		}
		pareto = append(pareto, candidate)
	}
	return pareto
}

// scheduleOneOperationPareto inserts eligibleOp into every solution of the
// current generation (after capping the generation's size), collects the
// best-ranked feasible resulting solution of each member, and culls those
// down to their Pareto-optimal frontier.
func scheduleOneOperationPareto(inst *problem.Instance, g *cg.Graph, currentSolutions []*partial.Solution, eligibleOp problem.Operation, reentrant problem.MachineId, cfg config) ([]*partial.Solution, error) {
	currentGeneration := reduceGeneration(inst, currentSolutions, cfg.maxPartialSolutions)
	if len(currentGeneration) == 0 {
		return nil, fmt.Errorf("heuristics: %w", ErrNoFeasibleOption)
	}

	var newGeneration []*partial.Solution
	for _, sol := range currentGeneration {
		best, err := getFeasibleOptions(inst, g, sol, eligibleOp, reentrant, cfg)
		if err != nil {
			return nil, err
		}
		if best == nil {
			continue
		}
		newGeneration = append(newGeneration, best.sol)
	}

	if len(newGeneration) == 0 {
		return nil, fmt.Errorf("heuristics: %w: operation %s has no feasible option in any generation member", ErrNoFeasibleOption, eligibleOp)
	}
	return simpleCull(newGeneration), nil
}
