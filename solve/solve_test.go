package solve_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

// homogeneousCase builds the duplex homogeneous instance spec.md §8's seed
// scenarios describe, same fixture shape as bnb_test.go/dd_test.go's local
// copy (package solve_test can't import either's unexported helper).
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

func TestSolveBHCSTriviallyFeasibleScenario(t *testing.T) {
	inst := homogeneousCase(t, 863, 456, 735, 13958, 15395, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.BHCS)
	require.NoError(t, err)
	require.Greater(t, result.Makespan, problem.Delay(0))
}

// goldenScenario is one of spec.md §8's seed scenarios: (load, p1, p2,
// bufferMin, bufferMax, nJobs) plus the expected makespan.
type goldenScenario struct {
	name                         string
	load, p1, p2, bufMin, bufMax problem.Delay
	nJobs                        int
	wantMakespan                 problem.Delay
	exact                        bool
}

var goldenScenarios = []goldenScenario{
	{"NoInterleavingPossible", 1, 1, 1, 1, 1, 50, 101, true},
	{"NoInterleavingPossibleSmall", 1, 1, 1, 1, 1, 5, 11, true},
	{"AllFirstPassBeforeSecondPass", 1, 10, 10, 100, 150, 14, 281, true},
	{"FitsExactlyInMinBuffer", 1, 10, 10, 100, 150, 52, 1041, true},
	{"SlightlyLooseBuffer", 1, 10, 10, 105, 150, 22, 441, false},
}

// TestSolveGoldenScenariosBranchAndBound re-asserts spec.md §8's exact
// seed-scenario makespans through the dispatcher's BranchAndBound path, the
// entry point a CLI `--algorithm bnb` run actually takes.
func TestSolveGoldenScenariosBranchAndBound(t *testing.T) {
	for _, sc := range goldenScenarios {
		t.Run(sc.name, func(t *testing.T) {
			inst := homogeneousCase(t, sc.load, sc.p1, sc.p2, sc.bufMin, sc.bufMax, sc.nJobs)
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(sc.nJobs)*time.Second)
			defer cancel()

			result, err := solve.Solve(ctx, inst, solve.BranchAndBound)
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

// TestSolveGoldenScenariosDD re-asserts the same literals through the DD
// dispatch path.
func TestSolveGoldenScenariosDD(t *testing.T) {
	for _, sc := range goldenScenarios {
		t.Run(sc.name, func(t *testing.T) {
			inst := homogeneousCase(t, sc.load, sc.p1, sc.p2, sc.bufMin, sc.bufMax, sc.nJobs)
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(sc.nJobs)*time.Second)
			defer cancel()

			result, err := solve.Solve(ctx, inst, solve.DD)
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

// TestSolveMDBHCSScenarioFourMinimumMakespan checks spec.md §8's
// multi-dimensional BHCS claim through the dispatcher.
func TestSolveMDBHCSScenarioFourMinimumMakespan(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.MDBHCS, solve.WithMaxPartial(100))
	require.NoError(t, err)
	require.NotEmpty(t, result.Solutions)
	require.Equal(t, problem.Delay(281), result.Makespan)
}

func TestSolveMNEHReturnsPositiveMakespan(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.MNEH)
	require.NoError(t, err)
	require.Greater(t, result.Makespan, problem.Delay(0))
}

func TestSolveSequenceRebuildsFromBHCSResult(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seed, err := solve.Solve(ctx, inst, solve.BHCS)
	require.NoError(t, err)

	rebuilt, err := solve.Solve(ctx, inst, solve.Sequence, solve.WithSequenceSeed(seed.Solution.ChosenSequencesPerMachine()))
	require.NoError(t, err)
	require.Equal(t, seed.Makespan, rebuilt.Makespan)
}

func TestSolveUnknownAlgorithm(t *testing.T) {
	_, err := solve.ParseAlgorithmType("not-an-algorithm")
	require.ErrorIs(t, err, solve.ErrUnknownAlgorithm)
}

func TestSolveContextAlreadyDone(t *testing.T) {
	inst := homogeneousCase(t, 1, 1, 1, 1, 1, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solve.Solve(ctx, inst, solve.BHCS)
	require.ErrorIs(t, err, solve.ErrTimeOut)
}
