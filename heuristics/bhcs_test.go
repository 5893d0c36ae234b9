package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// duplexTwoJobs builds a 2-job instance where machine 1 is re-entrant
// (visited twice by both jobs, at ops 0 and 2), machine 2 in between.
func duplexTwoJobs(t *testing.T) *problem.Instance {
	t.Helper()
	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	jobs := map[problem.JobId][]problem.Operation{
		0: {op(0, 0), op(0, 1), op(0, 2)},
		1: {op(1, 0), op(1, 1), op(1, 2)},
	}
	machineMapping := map[problem.OperationKey]problem.MachineId{
		op(0, 0).Key(): 1, op(0, 1).Key(): 2, op(0, 2).Key(): 1,
		op(1, 0).Key(): 1, op(1, 1).Key(): 2, op(1, 2).Key(): 1,
	}
	processing := problem.NewDefaultMap[problem.OperationKey, problem.Delay](2)

	inst, err := problem.New(problem.Config{
		Name:            "duplex2",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: processing,
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
		ShopType:        problem.ShopFixedOrder,
	})
	require.NoError(t, err)

	_, err = cgbuilder.Build(inst)
	require.NoError(t, err)
	return inst
}

func TestSolveDuplexSequenceHoldsReEntrantOps(t *testing.T) {
	inst := duplexTwoJobs(t)
	reentrant := inst.ReEntrantMachines()[0]

	sol, err := heuristics.Solve(inst)
	require.NoError(t, err)

	seq := sol.MachineSequence(reentrant)
	require.NotEmpty(t, seq)

	// every committed operation on the re-entrant machine must belong to
	// the re-entrant machine's operation set.
	for _, o := range seq {
		require.True(t, inst.IsReEntrantOp(o) || o.Op == 0)
	}
}

func TestSolveOnlySimplexIsError(t *testing.T) {
	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	jobs := map[problem.JobId][]problem.Operation{
		0: {op(0, 0), op(0, 1)},
	}
	machineMapping := map[problem.OperationKey]problem.MachineId{
		op(0, 0).Key(): 0, op(0, 1).Key(): 1,
	}
	inst, err := problem.New(problem.Config{
		Name:            "simplexonly",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: problem.NewDefaultMap[problem.OperationKey, problem.Delay](1),
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
	})
	require.NoError(t, err)
	_, err = cgbuilder.Build(inst)
	require.NoError(t, err)

	_, err = heuristics.Solve(inst)
	require.Error(t, err)
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

	_, err = heuristics.Solve(inst)
	require.ErrorIs(t, err, heuristics.ErrNoReEntrantMachine)
}

func TestWithASAPRankingOption(t *testing.T) {
	inst := duplexTwoJobs(t)
	sol, err := heuristics.Solve(inst, heuristics.WithASAPRanking())
	require.NoError(t, err)
	require.NotNil(t, sol)
}
