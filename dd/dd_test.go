package dd_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/dd"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// homogeneousCase mirrors bnb_test.go's fixture of the same name; see that
// file's doc comment for the full grounding rationale. Duplicated here
// rather than exported from either package, since neither test binary
// imports the other.
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

// goldenScenario is one of spec.md §8's seed scenarios.
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

func TestSolveGoldenScenarios(t *testing.T) {
	for _, sc := range goldenScenarios {
		t.Run(sc.name, func(t *testing.T) {
			inst := homogeneousCase(t, sc.load, sc.p1, sc.p2, sc.bufMin, sc.bufMax, sc.nJobs)
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(sc.nJobs)*time.Second)
			defer cancel()

			result, err := dd.Solve(ctx, inst)
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

// TestSolveExplorationTypes checks that every exploration strategy
// produces a feasible, internally consistent result on the same instance
// (the strategies differ only in search order, never in what a feasible
// schedule is).
func TestSolveExplorationTypes(t *testing.T) {
	strategies := []dd.ExplorationType{dd.Breadth, dd.Depth, dd.Best, dd.StaticPriority, dd.Adaptive}
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)

	for _, strategy := range strategies {
		result, err := dd.Solve(context.Background(), inst, dd.WithExplorationType(strategy))
		require.NoError(t, err)
		require.Equal(t, problem.Delay(281), result.Makespan)
		require.LessOrEqual(t, result.LowerBound, result.Makespan)
	}
}

// TestSolveMaxWidthStillFeasible checks that a beam-width cap still
// produces a feasible (if possibly suboptimal) schedule rather than an
// error.
func TestSolveMaxWidthStillFeasible(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 14)

	result, err := dd.Solve(context.Background(), inst, dd.WithMaxWidth(4))
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Makespan, problem.Delay(281))
}

func TestSolveContextDeadlineReturnsIncumbent(t *testing.T) {
	inst := homogeneousCase(t, 1, 10, 10, 100, 150, 52)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	result, err := dd.Solve(ctx, inst)
	require.NoError(t, err)
	require.False(t, result.Optimal)
	require.Greater(t, result.Makespan, problem.Delay(0))
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

	_, err = dd.Solve(context.Background(), inst)
	require.ErrorIs(t, err, dd.ErrNoReEntrantMachine)
}
