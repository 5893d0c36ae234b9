// File: bounds.go
// Role: the trivial completion lower bound (§4.7), grounded on
// original_source's createTrivialCompletionLowerBound
// (src/solvers/branch_bound.cpp): for every job from the first duplex job
// onward (simplex or duplex), sum its first-pass processing time and, if
// it has one, its second-pass processing time; add
// the first duplex job's earliest unconstrained start and the final
// job's unload setup, and floor the result at the graph's unconstrained
// makespan.
package bnb

import (
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// CreateTrivialCompletionLowerBound exposes createTrivialCompletionLowerBound
// for other exact solvers (dd) that need the same instance-wide bound
// without depending on this package's search internals.
func CreateTrivialCompletionLowerBound(inst *problem.Instance, reentrant problem.MachineId) (problem.Delay, error) {
	return createTrivialCompletionLowerBound(inst, reentrant)
}

// createTrivialCompletionLowerBound computes a lower bound on the
// instance's makespan that holds regardless of how the re-entrant
// machine's operations are sequenced.
func createTrivialCompletionLowerBound(inst *problem.Instance, reentrant problem.MachineId) (problem.Delay, error) {
	g := inst.Graph()
	reentrantID, ok := inst.FindMachineReEntrantID(reentrant)
	if !ok {
		return 0, ErrNoReEntrantMachine
	}

	var firstPassTime, secondPassTime problem.Delay
	var firstDuplex problem.JobId
	haveDuplex := false

	jobsOutput := inst.JobsOutput()
	for _, job := range jobsOutput {
		if !haveDuplex {
			if inst.ReEntrancies(job, reentrantID) != problem.Duplex {
				continue
			}
			haveDuplex = true
			firstDuplex = job
		}

		jobOps := inst.JobOperationsOnMachine(job, reentrant)
		if len(jobOps) > 0 && g.HasOperation(jobOps[0]) {
			firstPassTime += inst.ProcessingTime(jobOps[0])
		}
		if len(jobOps) > 1 {
			secondPassTime += inst.ProcessingTime(jobOps[len(jobOps)-1])
		}
	}

	times := paths.InitializeASAPST(g, nil, true)
	result := paths.ComputeASAPST(g, times)
	if result.HasPositiveCycle() {
		return 0, ErrInfeasibleNode
	}

	var unconstrainedMakespan problem.Delay
	for _, t := range times {
		if t != paths.ASAPUnreached && t > unconstrainedMakespan {
			unconstrainedMakespan = t
		}
	}

	var firstDuplexStart problem.Delay
	if haveDuplex {
		firstOps := inst.JobOperationsOnMachine(firstDuplex, reentrant)
		if len(firstOps) > 0 {
			if v, err := g.GetVertex(firstOps[0]); err == nil {
				firstDuplexStart = times[v]
			}
		}
	}

	var lastUnloadSetup problem.Delay
	if len(jobsOutput) > 0 {
		lastJob := jobsOutput[len(jobsOutput)-1]
		lastJobOps, err := inst.JobOperations(lastJob)
		if err == nil && len(lastJobOps) >= 2 {
			lastUnloadSetup = inst.SetupTime(lastJobOps[len(lastJobOps)-2], lastJobOps[len(lastJobOps)-1])
		}
	}

	lowerBound := firstDuplexStart + firstPassTime + secondPassTime + lastUnloadSetup
	if unconstrainedMakespan > lowerBound {
		lowerBound = unconstrainedMakespan
	}
	return lowerBound, nil
}
