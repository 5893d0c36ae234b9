// File: bnb.go
// Role: the branch-and-bound exact solver (§4.7), grounded on
// original_source's fms::solvers::branch_bound::solve
// (src/solvers/branch_bound.cpp): seed an incumbent from a trivial
// "stupid" schedule, a BHCS result, and an MD-BHCS result; then run a
// LIFO (depth-first) search where every feasible insertion of the next
// eligible operation is pushed as a child node, pruning any node whose
// lower bound can no longer beat the incumbent, until the stack empties
// (proved optimal) or the caller's context is done (time budget).
package bnb

import (
	"context"
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Result reports the outcome of a Solve run.
type Result struct {
	Solution   *partial.Solution
	Makespan   problem.Delay
	LowerBound problem.Delay
	// Optimal is true iff the search exhausted every node (the stack
	// emptied, or every open node's lower bound met the incumbent) rather than
	// stopping on the context's time budget or the iteration cap.
	Optimal bool
}

// Solve runs branch-and-bound on inst until the search space is
// exhausted or ctx is done, whichever comes first.
func Solve(ctx context.Context, inst *problem.Instance, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)
	g := inst.Graph()
	if g == nil {
		return Result{}, fmt.Errorf("bnb: %w", partial.ErrNoGraph)
	}

	reentrants := inst.ReEntrantMachines()
	if len(reentrants) == 0 {
		return Result{}, ErrNoReEntrantMachine
	}
	reentrant := reentrants[0]
	if len(inst.MachineOperations(reentrant)) > 2 {
		return Result{}, ErrUnsupportedMultiplexity
	}

	times := paths.InitializeASAPST(g, nil, true)
	if r := paths.ComputeASAPST(g, times); r.HasPositiveCycle() {
		return Result{}, fmt.Errorf("bnb: input graph is infeasible")
	}

	trivialLowerBound, err := createTrivialCompletionLowerBound(inst, reentrant)
	if err != nil {
		return Result{}, err
	}

	initialSeq, err := heuristics.CreateInitialSequence(inst, reentrant)
	if err != nil {
		return Result{}, err
	}
	rootSol := partial.New(partial.MachinesSequences{reentrant: initialSeq}, append(paths.PathTimes{}, times...))
	root, err := newNode(inst, g, rootSol, reentrant, trivialLowerBound)
	if err != nil {
		return Result{}, err
	}

	bestFound, err := seedIncumbent(inst, g, reentrant, trivialLowerBound)
	if err != nil {
		return Result{}, err
	}
	if bestFound.Makespan < root.LowerBound {
		return Result{}, fmt.Errorf("bnb: %w: incumbent makespan %d is below the initial lower bound %d", ErrLowerBoundDecreased, bestFound.Makespan, root.LowerBound)
	}

	stack := []*Node{root}
	previousLowerBound := problem.Delay(0)

	for iteration := 0; len(stack) > 0 && iteration < cfg.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return Result{Solution: bestFound.Solution, Makespan: bestFound.Makespan, LowerBound: previousLowerBound, Optimal: false}, nil
		default:
		}

		lowerBound := bestFound.Makespan
		for _, n := range stack {
			if n.LowerBound < lowerBound {
				lowerBound = n.LowerBound
			}
		}
		if lowerBound < previousLowerBound {
			return Result{}, ErrLowerBoundDecreased
		}
		previousLowerBound = lowerBound

		if lowerBound >= bestFound.Makespan {
			return Result{Solution: bestFound.Solution, Makespan: bestFound.Makespan, LowerBound: lowerBound, Optimal: true}, nil
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cfg.logger.Debug().Int("open", len(stack)).Int64("lowerbound", int64(node.LowerBound)).Int64("incumbent", int64(bestFound.Makespan)).Msg("bnb: expanding node")

		if node.LowerBound >= bestFound.Makespan {
			continue
		}

		eligibleOp, ok := nextEligibleOp(inst, node.Solution, reentrant)
		if !ok {
			if node.Makespan < bestFound.Makespan {
				bestFound = *node
			}
			continue
		}

		children, err := expand(inst, g, node, eligibleOp, reentrant, trivialLowerBound)
		if err != nil {
			return Result{}, err
		}
		for _, child := range children {
			if child.LowerBound < node.LowerBound {
				return Result{}, fmt.Errorf("%w: %d < %d after inserting %s", ErrLowerBoundDecreased, child.LowerBound, node.LowerBound, eligibleOp)
			}
			if child.LowerBound < bestFound.Makespan {
				stack = append(stack, child)
			}
		}
	}

	return Result{Solution: bestFound.Solution, Makespan: bestFound.Makespan, LowerBound: previousLowerBound, Optimal: len(stack) == 0}, nil
}

// seedIncumbent builds the trivial, BHCS, and MD-BHCS seed nodes and
// returns whichever has the lowest makespan, mirroring solve's seeding
// sequence.
func seedIncumbent(inst *problem.Instance, g *cg.Graph, reentrant problem.MachineId, trivialLowerBound problem.Delay) (Node, error) {
	stupidSeq := partial.CreateMachineTrivialSolution(inst, reentrant)
	stupidSol := partial.New(partial.MachinesSequences{reentrant: stupidSeq}, nil)
	if len(stupidSeq) > 0 {
		stupidSol.SetFirstFeasibleEdge(reentrant, len(stupidSeq)-1)
	}
	stupidNode, err := newNode(inst, g, stupidSol, reentrant, trivialLowerBound)
	if err != nil {
		return Node{}, err
	}
	best := *stupidNode

	if bhcsSol, err := heuristics.Solve(inst); err == nil {
		if bhcsNode, err := newNode(inst, g, bhcsSol, reentrant, trivialLowerBound); err == nil && bhcsNode.Makespan < best.Makespan {
			best = *bhcsNode
		}
	}

	if frontier, err := heuristics.SolveParetoFrontier(inst, heuristics.WithMaxPartialSolutions(20)); err == nil {
		for _, sol := range frontier {
			if mdNode, err := newNode(inst, g, sol, reentrant, trivialLowerBound); err == nil && mdNode.Makespan < best.Makespan {
				best = *mdNode
			}
		}
	}

	return best, nil
}

// nextEligibleOp walks the same job/operation enumeration BHCS uses to
// build its initial sequence and schedule each later pass, returning the
// first operation not yet present in sol's committed sequence.
func nextEligibleOp(inst *problem.Instance, sol *partial.Solution, reentrant problem.MachineId) (problem.Operation, bool) {
	seq := sol.MachineSequence(reentrant)
	committed := make(map[problem.Operation]bool, len(seq))
	for _, op := range seq {
		committed[op] = true
	}

	jobs := inst.JobsOutput()
	for i := 0; i+1 < len(jobs); i++ {
		jobOps := inst.JobOperationsOnMachine(jobs[i], reentrant)
		for k := 1; k < len(jobOps); k++ {
			if !committed[jobOps[k]] {
				return jobOps[k], true
			}
		}
	}
	return problem.Operation{}, false
}

// expand builds every feasible child node resulting from inserting
// eligibleOp into node's solution, mirroring scheduleOneOperation's
// "push every feasible option" behavior (branch-and-bound keeps them
// all, unlike BHCS which keeps only the ranked winner).
func expand(inst *problem.Instance, g *cg.Graph, node *Node, eligibleOp problem.Operation, reentrant problem.MachineId, trivialLowerBound problem.Delay) ([]*Node, error) {
	options, err := heuristics.CreateOptions(inst, node.Solution, g, eligibleOp, reentrant)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("bnb: no options could be created for %s", eligibleOp)
	}

	asapst := append(paths.PathTimes{}, node.Solution.ASAPST()...)
	cands, err := heuristics.EvaluateOptions(inst, g, node.Solution, options, asapst, reentrant)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("bnb: no feasible options for %s", eligibleOp)
	}

	children := make([]*Node, 0, len(cands))
	for _, c := range cands {
		child, err := newNode(inst, g, c.Sol, reentrant, trivialLowerBound)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
