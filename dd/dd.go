// File: dd.go
// Role: the decision-diagram / schedule-abstraction-graph solver (§4.8,
// component H), grounded on original_source's fms::solvers::dd::solve
// (include/fms/solvers/dd.hpp, declarations only — no .cpp implementation
// exists in original_source, so this is a from-scratch port scoped to
// this codebase's reentrant-machine-sequence architecture, reusing
// heuristics' option generation exactly as bnb does): seed a root vertex,
// expand the next eligible operation into every feasible child, admit
// each child into the depth-bucketed dominance registry, and pop from an
// ExplorationType-ordered queue until it empties (proved optimal) or the
// caller's context or iteration budget runs out, tracking anytime
// upper/lower bounds the way DDSolution::addNewSolution does.
package dd

import (
	"context"
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/bnb"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// AnytimeSample records the search's best known bounds at a given
// iteration, mirroring DDSolution's timestamped anytime-solutions and
// anytime-bounds traces (sampled by iteration count here rather than wall
// clock, since the scheduling core takes no direct time reads).
type AnytimeSample struct {
	Iteration  int
	UpperBound problem.Delay
	LowerBound problem.Delay
}

// Result reports the outcome of a Solve run.
type Result struct {
	Solution *partial.Solution
	Makespan problem.Delay
	// LowerBound is the best proven lower bound across every vertex still
	// open (or the proven optimum, if Optimal is true).
	LowerBound problem.Delay
	Optimal    bool
	Anytime    []AnytimeSample
}

// Solve runs the schedule-abstraction-graph search over inst's re-entrant
// machine.
func Solve(ctx context.Context, inst *problem.Instance, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)
	g := inst.Graph()
	if g == nil {
		return Result{}, fmt.Errorf("dd: %w", partial.ErrNoGraph)
	}

	reentrants := inst.ReEntrantMachines()
	if len(reentrants) == 0 {
		return Result{}, ErrNoReEntrantMachine
	}
	reentrant := reentrants[0]
	if len(inst.MachineOperations(reentrant)) > 2 {
		return Result{}, ErrUnsupportedMultiplexity
	}

	trivialLowerBound, err := bnb.CreateTrivialCompletionLowerBound(inst, reentrant)
	if err != nil {
		return Result{}, err
	}

	initialSeq, err := heuristics.CreateInitialSequence(inst, reentrant)
	if err != nil {
		return Result{}, err
	}
	rootSol := partial.New(partial.MachinesSequences{reentrant: initialSeq}, nil)
	root, err := newVertex(inst, g, rootSol, 0, 0, 0)
	if err != nil {
		return Result{}, err
	}

	bestFound, err := seedIncumbent(inst, g, reentrant)
	if err != nil {
		return Result{}, err
	}
	bestMakespan, err := bestFound.RealMakespan(inst)
	if err != nil {
		return Result{}, err
	}

	root.setSlack(g, bestMakespan)
	reg := newRegistry()
	reg.admit(root)
	q := newQueue(cfg.explorationType)
	q.push(root)

	nextID := uint64(1)
	var anytime []AnytimeSample
	lowerBound := root.LowerBound()
	if trivialLowerBound > lowerBound {
		lowerBound = trivialLowerBound
	}

	for iteration := 0; q.Len() > 0 && iteration < cfg.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return Result{Solution: bestFound, Makespan: bestMakespan, LowerBound: lowerBound, Optimal: false, Anytime: anytime}, nil
		default:
		}

		node := q.pop()
		if node.LowerBound() >= bestMakespan {
			continue
		}

		eligibleOp, ok := nextEligibleOp(inst, node.Solution, reentrant)
		if !ok {
			makespan, err := node.Solution.RealMakespan(inst)
			if err != nil {
				return Result{}, err
			}
			if makespan < bestMakespan {
				bestFound = node.Solution
				bestMakespan = makespan
				anytime = append(anytime, AnytimeSample{Iteration: iteration, UpperBound: bestMakespan, LowerBound: lowerBound})
				cfg.logger.Debug().Int("iteration", iteration).Int64("makespan", int64(bestMakespan)).Msg("dd: new incumbent")
			}
			continue
		}

		children, err := expand(inst, g, node, eligibleOp, reentrant, &nextID)
		if err != nil {
			return Result{}, err
		}
		for _, child := range children {
			if child.LowerBound() >= bestMakespan {
				continue
			}
			child.setSlack(g, bestMakespan)
			if !reg.admit(child) {
				continue
			}
			if cfg.maxWidth > 0 {
				reg.prune(child.Depth, cfg.maxWidth)
			}
			q.push(child)
		}

		if q.Len() > 0 {
			lb := bestMakespan
			for _, layer := range reg.byDepth {
				for _, v := range layer {
					if v.LowerBound() < lb {
						lb = v.LowerBound()
					}
				}
			}
			if lb > lowerBound {
				lowerBound = lb
				anytime = append(anytime, AnytimeSample{Iteration: iteration, UpperBound: bestMakespan, LowerBound: lowerBound})
			}
		}
	}

	optimal := q.Len() == 0
	if optimal {
		lowerBound = bestMakespan
	}
	return Result{Solution: bestFound, Makespan: bestMakespan, LowerBound: lowerBound, Optimal: optimal, Anytime: anytime}, nil
}

func seedIncumbent(inst *problem.Instance, g *cg.Graph, reentrant problem.MachineId) (*partial.Solution, error) {
	stupidSeq := partial.CreateMachineTrivialSolution(inst, reentrant)
	best := partial.New(partial.MachinesSequences{reentrant: stupidSeq}, nil)
	if len(stupidSeq) > 0 {
		best.SetFirstFeasibleEdge(reentrant, len(stupidSeq)-1)
	}
	if _, err := newVertex(inst, g, best, 0, 0, 0); err != nil {
		return nil, err
	}

	if bhcsSol, err := heuristics.Solve(inst); err == nil {
		if _, err := newVertex(inst, g, bhcsSol, 0, 0, 0); err == nil {
			bestMakespan, err1 := best.RealMakespan(inst)
			bhcsMakespan, err2 := bhcsSol.RealMakespan(inst)
			if err1 == nil && err2 == nil && bhcsMakespan < bestMakespan {
				best = bhcsSol
			}
		}
	}
	return best, nil
}

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

func expand(inst *problem.Instance, g *cg.Graph, node *Vertex, eligibleOp problem.Operation, reentrant problem.MachineId, nextID *uint64) ([]*Vertex, error) {
	options, err := heuristics.CreateOptions(inst, node.Solution, g, eligibleOp, reentrant)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("dd: no options could be created for %s", eligibleOp)
	}

	asapst := append(paths.PathTimes{}, node.Solution.ASAPST()...)
	cands, err := heuristics.EvaluateOptions(inst, g, node.Solution, options, asapst, reentrant)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("dd: no feasible options for %s", eligibleOp)
	}

	children := make([]*Vertex, 0, len(cands))
	for _, c := range cands {
		child, err := newVertex(inst, g, c.Sol, *nextID, node.ID, node.Depth+1)
		if err != nil {
			continue
		}
		*nextID++
		children = append(children, child)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("dd: every option for %s produced an infeasible vertex", eligibleOp)
	}
	return children, nil
}
