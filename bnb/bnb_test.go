package bnb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/bnb"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// homogeneousCase builds the duplex homogeneous instance used by spec.md's
// §8 seed scenarios, grounded on original_source's
// test/test_utils/instance_generator.hpp createHomogeneousCase: n pages,
// each a (print1, print2) pair on a single re-entrant machine, with a
// sequence-dependent minimum gap (bufferMin) and a maximum gap (bufferMax)
// between a page's two passes. load is folded into the first page's first
// pass; unload is omitted, since every literal makespan in spec.md §8 is
// reported as the start time of the schedule's final operation rather than
// its completion, and the duplex homogeneous case never again touches
// unload once the last print2 begins.
func homogeneousCase(t *testing.T, load, p1, p2, bufferMin, bufferMax problem.Delay, nPages int) *problem.Instance {
	t.Helper()
	const reentrantMachine problem.MachineId = 0

	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }

	jobs := make(map[problem.JobId][]problem.Operation, nPages)
	machineMapping := make(map[problem.OperationKey]problem.MachineId, 2*nPages)
	processing := problem.NewDefaultMap[problem.OperationKey, problem.Delay](0)
	setup := problem.NewPairDefaultMap(0)
	dueDatesIndep := problem.PairMap{}

	for j := 0; j < nPages; j++ {
		job := problem.JobId(j)
		print1, print2 := op(job, 0), op(job, 1)
		jobs[job] = []problem.Operation{print1, print2}
		machineMapping[print1.Key()] = reentrantMachine
		machineMapping[print2.Key()] = reentrantMachine

		firstPassTime := p1
		if j == 0 {
			firstPassTime += load
		}
		processing.Set(print1.Key(), firstPassTime)
		processing.Set(print2.Key(), p2)

		setup.Set(problem.PairKey{Src: print1.Key(), Dst: print2.Key()}, bufferMin)
		dueDatesIndep[problem.PairKey{Src: print2.Key(), Dst: print1.Key()}] = firstPassTime + bufferMax
	}

	inst, err := problem.New(problem.Config{
		Name:            "homogeneous",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: processing,
		SetupTimes:      setup,
		DueDatesIndep:   dueDatesIndep,
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
		ShopType:        problem.ShopFixedOrder,
	})
	require.NoError(t, err)

	_, err = cgbuilder.Build(inst)
	require.NoError(t, err)
	return inst
}

func TestSolveTinyHomogeneousCase(t *testing.T) {
	inst := homogeneousCase(t, 863, 456, 735, 13958, 15395, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := bnb.Solve(ctx, inst)
	require.NoError(t, err)
	require.Greater(t, result.Makespan, problem.Delay(0))
	require.LessOrEqual(t, result.LowerBound, result.Makespan)
}

// goldenScenario is one of spec.md §8's seed scenarios: (load, p1, p2,
// unload, bufferMin, bufferMax, nJobs) plus the expected makespan.
type goldenScenario struct {
	name                          string
	load, p1, p2, bufMin, bufMax  problem.Delay
	nJobs                         int
	wantMakespan                  problem.Delay
	exact                         bool
}

func TestSolveGoldenScenarios(t *testing.T) {
	scenarios := []goldenScenario{
		{"NoInterleavingPossible", 1, 1, 1, 1, 1, 50, 101, true},
		{"NoInterleavingPossibleSmall", 1, 1, 1, 1, 1, 5, 11, true},
		{"AllFirstPassBeforeSecondPass", 1, 10, 10, 100, 150, 14, 281, true},
		{"FitsExactlyInMinBuffer", 1, 10, 10, 100, 150, 52, 1041, true},
		{"SlightlyLooseBuffer", 1, 10, 10, 105, 150, 22, 441, false},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			inst := homogeneousCase(t, sc.load, sc.p1, sc.p2, sc.bufMin, sc.bufMax, sc.nJobs)
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(sc.nJobs)*time.Second)
			defer cancel()

			result, err := bnb.Solve(ctx, inst)
			require.NoError(t, err)
			require.LessOrEqual(t, result.LowerBound, result.Makespan)
			if sc.exact {
				require.Equal(t, sc.wantMakespan, result.Makespan)
			} else {
				require.GreaterOrEqual(t, result.Makespan, sc.wantMakespan)
			}
		})
	}
}

// TestMDBHCSScenarioFourMinimumMakespan checks spec.md §8's multi-dimensional
// BHCS claim: on scenario 4 with maxPartialSolutions=100, the frontier's
// minimum makespan equals 281 and the frontier is non-empty.
func TestMDBHCSScenarioFourMinimumMakespan(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)

	frontier, err := heuristics.SolveParetoFrontier(inst, heuristics.WithMaxPartialSolutions(100))
	require.NoError(t, err)
	require.NotEmpty(t, frontier)

	min := problem.Delay(-1)
	for _, sol := range frontier {
		makespan, err := sol.RealMakespan(inst)
		require.NoError(t, err)
		if min < 0 || makespan < min {
			min = makespan
		}
	}
	require.Equal(t, problem.Delay(281), min)
}

func TestSolveNoReEntrantMachine(t *testing.T) {
	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	jobs := map[problem.JobId][]problem.Operation{
		0: {op(0, 0), op(0, 1)},
		1: {op(1, 0), op(1, 1)},
	}
	machineMapping := map[problem.OperationKey]problem.MachineId{
		op(0, 0).Key(): 0, op(0, 1).Key(): 1,
		op(1, 0).Key(): 0, op(1, 1).Key(): 1,
	}
	inst, err := problem.New(problem.Config{
		Name:            "noreentrant",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: problem.NewDefaultMap[problem.OperationKey, problem.Delay](1),
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
	})
	require.NoError(t, err)
	_, err = cgbuilder.Build(inst)
	require.NoError(t, err)

	_, err = bnb.Solve(context.Background(), inst)
	require.ErrorIs(t, err, bnb.ErrNoReEntrantMachine)
}
