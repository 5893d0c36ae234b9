// File: bhcs.go
// Role: the balanced-heuristic construction scheme (§4.6), grounded on
// original_source's fms::solvers::forward (include/fms/solvers/
// forward_heuristic.hpp, src/solvers/forward_heuristic.cpp): iteratively
// insert each duplex job's later re-entrant passes into the committed
// sequence on the instance's (single) re-entrant machine, at the position
// that best balances flexibility, productivity, and committed work.
package heuristics

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Solve runs BHCS on inst, which must already have a constraint graph
// attached (e.g. via cgbuilder.Build).
func Solve(inst *problem.Instance, opts ...Option) (*partial.Solution, error) {
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
	sol := partial.New(partial.MachinesSequences{reentrant: initialSeq}, times)

	jobs := inst.JobsOutput()
	for i := 0; i+1 < len(jobs); i++ {
		jobOps := inst.JobOperationsOnMachine(jobs[i], reentrant)
		// the first pass is already part of the initial sequence.
		for k := 1; k < len(jobOps); k++ {
			sol, err = scheduleOneOperation(inst, g, sol, jobOps[k], reentrant, cfg)
			if err != nil {
				return nil, err
			}
		}
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

// createInitialSequence seeds the re-entrant machine's sequence with every
// duplex job's first pass, in output order, followed by the last duplex
// job's remaining passes — the canonical BHCS seed.
func createInitialSequence(inst *problem.Instance, reentrant problem.MachineId) (partial.Sequence, error) {
	reentrantID, ok := inst.FindMachineReEntrantID(reentrant)
	if !ok {
		return nil, ErrNoReEntrantMachine
	}

	var seq partial.Sequence
	var lastDuplexJob problem.JobId
	haveDuplex := false
	for _, job := range inst.JobsOutput() {
		if inst.ReEntrancies(job, reentrantID) == problem.Duplex {
			jobOps := inst.JobOperationsOnMachine(job, reentrant)
			seq = append(seq, jobOps[0])
			lastDuplexJob = job
			haveDuplex = true
		}
	}
	if !haveDuplex {
		return nil, ErrOnlySimplexJobs
	}

	jobOps := inst.JobOperationsOnMachine(lastDuplexJob, reentrant)
	for i := 1; i < len(jobOps); i++ {
		seq = append(seq, jobOps[i])
	}
	return seq, nil
}

// determineSmallestDeadline returns the tightest due date reachable from v
// via an outgoing negative-weight (due-date) edge, or problem.Delay's
// maximal value if v has none.
func determineSmallestDeadline(g *cg.Graph, v cg.VertexId) problem.Delay {
	deadline := problem.Delay(1<<62 - 1)
	for _, e := range g.Outgoing(v) {
		if e.Weight < 0 && -e.Weight < deadline {
			deadline = -e.Weight
		}
	}
	return deadline
}

// createOptions builds every potentially feasible insertion of
// eligibleOp into the re-entrant machine's committed sequence, scanning
// forward from the first-feasible cursor and stopping once the
// accumulated gap time exceeds the operation's tightest reachable
// deadline (no later insertion point could still meet it).
func createOptions(inst *problem.Instance, sol *partial.Solution, g *cg.Graph, eligibleOp problem.Operation, reentrant problem.MachineId) (problem.Operation, []partial.SchedulingOption, error) {
	seq := sol.MachineSequence(reentrant)
	if len(seq) == 0 {
		return problem.Operation{}, nil, ErrNoFeasibleOption
	}
	lastFeasible := seq[len(seq)-1]

	v, err := g.GetVertex(eligibleOp)
	if err != nil {
		return problem.Operation{}, nil, err
	}
	deadline := determineSmallestDeadline(g, v)

	startIdx := sol.FirstFeasibleIndex(reentrant)
	if startIdx < 1 {
		startIdx = 1 // never insert before the first committed operation
	}

	var options []partial.SchedulingOption
	var totalTime problem.Delay
	for idx := startIdx; idx < len(seq); idx++ {
		lastFeasible = seq[idx]
		prevOp := seq[idx-1]
		nextOp := seq[idx]
		prevNextWeight := inst.Query(prevOp, nextOp)

		if eligibleOp.Job != nextOp.Job {
			options = append(options, partial.SchedulingOption{
				PrevOp:   prevOp,
				CurOp:    eligibleOp,
				NextOp:   nextOp,
				Position: idx,
			})
		}

		if totalTime > deadline {
			break
		}
		totalTime += prevNextWeight
	}
	return lastFeasible, options, nil
}

// countOpsInBuffer counts how many operations are currently committed
// between the just-scheduled operation's job predecessor and the current
// first-feasible cursor, i.e. how much work is buffered in the re-entrant
// loop.
func countOpsInBuffer(sol *partial.Solution, reentrant problem.MachineId) (int, error) {
	seq := sol.MachineSequence(reentrant)
	idx := sol.FirstFeasibleIndex(reentrant)
	if idx-1 < 0 || idx-1 >= len(seq) {
		return 0, ErrNoFeasibleOption
	}
	curO := seq[idx-1]
	end := problem.Operation{Job: curO.Job, Op: curO.Op - 1}

	nrOps := 1
	for i := idx - 2; i >= 0; i-- {
		if seq[i] == end {
			break
		}
		nrOps++
	}
	return nrOps, nil
}

// computeFutureAvgProductivity measures the buffer time available between
// the just-inserted operation and its job predecessor's earlier pass, used
// by the balanced ranking's productivity term.
func computeFutureAvgProductivity(g *cg.Graph, times paths.PathTimes, sol *partial.Solution, reentrant problem.MachineId) (problem.Delay, int, error) {
	seq := sol.MachineSequence(reentrant)
	idx := sol.FirstFeasibleIndex(reentrant)
	if idx < 0 || idx >= len(seq) || idx-1 < 0 {
		return 0, 0, ErrNoFeasibleOption
	}
	nextO := seq[idx]
	curO := seq[idx-1]

	nrOps, err := countOpsInBuffer(sol, reentrant)
	if err != nil {
		return 0, 0, err
	}

	op1 := problem.Operation{Job: nextO.Job, Op: curO.Op}
	op2 := problem.Operation{Job: curO.Job, Op: curO.Op - 1}

	var usedBufferTime problem.Delay
	if g.HasOperation(op1) && g.HasOperation(op2) {
		v1, err1 := g.GetVertex(op1)
		v2, err2 := g.GetVertex(op2)
		if err1 == nil && err2 == nil {
			usedBufferTime = times[v1] - times[v2]
		}
	}
	return usedBufferTime, nrOps, nil
}

// validateInterleaving speculatively adds edges to g (skipping ones
// already present, and wiring the maintenance due-date counter-edge for
// any maintenance source) and recomputes the ASAPST window before
// rolling every added edge back, regardless of outcome.
func validateInterleaving(inst *problem.Instance, g *cg.Graph, edges []cg.Edge, times paths.PathTimes, sources, window []cg.VertexId) (paths.LongestPathResult, error) {
	maintPolicy := inst.MaintenancePolicy()
	var added []cg.Edge
	for _, e := range edges {
		if !g.HasEdge(e.Src, e.Dst) {
			if err := g.AddEdge(e.Src, e.Dst, e.Weight); err != nil {
				return paths.LongestPathResult{}, err
			}
			added = append(added, e)
		}
		srcOp, err := g.Operation(e.Src)
		if err == nil && srcOp.IsMaintenance() {
			dueWeight := maintPolicy.DurationForOp(srcOp) + maintPolicy.MinimumIdle() - 1
			rev, err := g.AddOrUpdateEdge(e.Dst, e.Src, -dueWeight)
			if err == nil {
				added = append(added, rev)
			}
		}
	}

	result := paths.ComputeASAPSTWindow(g, times, sources, window)
	g.RemoveEdges(added)
	return result, nil
}

type candidate struct {
	sol *partial.Solution
	opt partial.SchedulingOption
}

// evaluateOptions tries every option, accepting those whose interleaving
// edges keep the graph acyclic, and filling in the ranking scalars
// (makespan-so-far, earliest future start, buffer productivity) needed by
// the ranking step.
func evaluateOptions(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, options []partial.SchedulingOption, times paths.PathTimes, reentrant problem.MachineId) ([]candidate, error) {
	jobsOutput := inst.JobsOutput()
	if len(jobsOutput) == 0 {
		return nil, ErrNoFeasibleOption
	}
	firstJob := jobsOutput[0]
	firstOps, err := inst.JobOperations(firstJob)
	if err != nil || len(firstOps) == 0 {
		return nil, ErrNoFeasibleOption
	}
	firstOp := firstOps[0]
	firstOpVertex, err := g.GetVertex(firstOp)
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, o := range options {
		asapst := append(paths.PathTimes(nil), times...)

		ps, err := sol.Add(reentrant, o, times)
		if err != nil {
			return nil, err
		}
		finalEdges, err := ps.GetAllAndInferredEdges(inst)
		if err != nil {
			return nil, err
		}

		curV, err := g.GetVertex(o.CurOp)
		if err != nil {
			return nil, err
		}
		nextV, err := g.GetVertex(o.NextOp)
		if err != nil {
			return nil, err
		}

		jobStart := o.CurOp.Job
		var sources []cg.VertexId
		if jobStart == firstOp.Job {
			sources = []cg.VertexId{firstOpVertex}
		} else {
			prevJob := jobStart - 1
			if prevJob < 1 {
				prevJob = 1
			}
			sources = g.GetVerticesRange(prevJob-1, prevJob-1)
		}
		window := g.GetVerticesRange(jobStart, o.NextOp.Job)
		window = append(window, g.GetVertices(cg.MaintJobID)...)

		result, err := validateInterleaving(inst, g, finalEdges, asapst, sources, window)
		if err != nil {
			return nil, err
		}
		if result.HasPositiveCycle() {
			continue
		}

		pSol, err := sol.Add(reentrant, o, asapst)
		if err != nil {
			return nil, err
		}
		pSol.SetMakespanLastScheduledJob(asapst[curV])

		avgProd, nrOps, err := computeFutureAvgProductivity(g, asapst, pSol, reentrant)
		if err != nil {
			return nil, err
		}
		if nrOps > 0 {
			pSol.SetAverageProductivity(avgProd / problem.Delay(nrOps))
		}
		pSol.SetNrOpsInLoop(uint(nrOps))
		pSol.SetEarliestStartFutureOperation(asapst[nextV])

		out = append(out, candidate{sol: pSol, opt: o})
	}
	return out, nil
}

// rankSolutionsASAP picks the candidate whose current-operation start time
// is earliest.
func rankSolutionsASAP(g *cg.Graph, cands []candidate) (int, bool) {
	best := -1
	var bestStart problem.Delay
	for i, c := range cands {
		v, err := g.GetVertex(c.opt.CurOp)
		if err != nil {
			continue
		}
		start := c.sol.ASAPST()[v]
		if best == -1 || start <= bestStart {
			best = i
			bestStart = start
		}
	}
	return best, best != -1
}

// rankSolutions scores every candidate by a weighted, min-max-normalized
// combination of three terms (how much the current op's start was pushed,
// how much the next op's start was pushed, and how much work is
// committed) and returns the lowest-scoring index.
func rankSolutions(g *cg.Graph, cands []candidate, baseline paths.PathTimes, cfg config) (int, bool) {
	if len(cands) == 0 {
		return -1, false
	}
	type stats struct{ push, pushNext problem.Delay; nrOps uint }
	st := make([]stats, len(cands))

	minPush, maxPush := problem.Delay(1<<62-1), -problem.Delay(1<<62-1)
	minPushNext, maxPushNext := problem.Delay(1<<62-1), -problem.Delay(1<<62-1)
	minOps, maxOps := ^uint(0), uint(0)

	for i, c := range cands {
		curV, err1 := g.GetVertex(c.opt.CurOp)
		nextV, err2 := g.GetVertex(c.opt.NextOp)
		if err1 != nil || err2 != nil {
			continue
		}
		asapst := c.sol.ASAPST()
		push := asapst[curV] - baseline[curV]
		pushNext := asapst[nextV] - baseline[nextV]
		nrOps := c.sol.NrOpsInLoop()

		st[i] = stats{push: push, pushNext: pushNext, nrOps: nrOps}
		c.sol.SetMakespanLastScheduledJob(asapst[curV])
		c.sol.SetEarliestStartFutureOperation(push)

		if push < minPush {
			minPush = push
		}
		if push > maxPush {
			maxPush = push
		}
		if pushNext < minPushNext {
			minPushNext = pushNext
		}
		if pushNext > maxPushNext {
			maxPushNext = pushNext
		}
		if nrOps < minOps {
			minOps = nrOps
		}
		if nrOps > maxOps {
			maxOps = nrOps
		}
	}

	pushRange := float64(maxPush - minPush)
	if pushRange == 0 {
		pushRange = 1
	}
	pushNextRange := float64(maxPushNext - minPushNext)
	if pushNextRange == 0 {
		pushNextRange = 1
	}
	opsRange := float64(maxOps - minOps)
	if opsRange == 0 {
		opsRange = 1
	}

	best := -1
	bestRank := float64(1<<62 - 1)
	for i, c := range cands {
		pushNorm := float64(st[i].push-minPush) / pushRange
		pushNextNorm := float64(st[i].pushNext-minPushNext) / pushNextRange
		opsNorm := float64(st[i].nrOps-minOps) / opsRange

		rank := cfg.flexibilityWeight*pushNorm + cfg.productivityWeight*pushNextNorm + cfg.tieWeight*opsNorm
		c.sol.SetRanking(rank)
		if rank < bestRank {
			bestRank = rank
			best = i
		}
	}
	return best, best != -1
}

// getFeasibleOptions creates, evaluates and ranks every insertion option
// for eligibleOp, returning the winning candidate.
func getFeasibleOptions(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, eligibleOp problem.Operation, reentrant problem.MachineId, cfg config) (*candidate, error) {
	_, options, err := createOptions(inst, sol, g, eligibleOp, reentrant)
	if err != nil {
		return nil, err
	}

	jobStart := eligibleOp.Job
	asapst := append(paths.PathTimes(nil), sol.ASAPST()...)
	prevJob := jobStart - 1
	if prevJob < 1 {
		prevJob = 1
	}
	lastFeasible, _, _ := createOptions(inst, sol, g, eligibleOp, reentrant)
	_ = lastFeasible
	sources := g.GetVerticesRange(prevJob-1, prevJob-1)
	window := g.GetVerticesRange(jobStart, jobStart)
	paths.ComputeASAPSTWindow(g, asapst, sources, window)

	cands, err := evaluateOptions(inst, g, sol, options, asapst, reentrant)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, nil
	}

	var idx int
	var ok bool
	if cfg.asapRanking {
		idx, ok = rankSolutionsASAP(g, cands)
	} else {
		idx, ok = rankSolutions(g, cands, asapst, cfg)
	}
	if !ok {
		return nil, nil
	}

	best := cands[idx]
	if cfg.maintenance != nil {
		maintSol, err := cfg.maintenance(inst, reentrant, best.sol)
		if err == nil {
			best.sol = maintSol
		}
	}
	return &best, nil
}

// scheduleOneOperation inserts eligibleOp into the re-entrant machine's
// sequence at the best-ranked feasible position.
func scheduleOneOperation(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, eligibleOp problem.Operation, reentrant problem.MachineId, cfg config) (*partial.Solution, error) {
	best, err := getFeasibleOptions(inst, g, sol, eligibleOp, reentrant, cfg)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("%w: operation %s", ErrNoFeasibleOption, eligibleOp)
	}
	cfg.logger.Debug().Msgf("scheduled %s via option %s->%s->%s", eligibleOp, best.opt.PrevOp, best.opt.CurOp, best.opt.NextOp)
	return best.sol, nil
}
