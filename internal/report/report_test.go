package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/report"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

func homogeneousCase(t *testing.T, nPages int) *problem.Instance {
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
		processing.Set(print1.Key(), 10)
		processing.Set(print2.Key(), 10)
		setup.Set(problem.PairKey{Src: print1.Key(), Dst: print2.Key()}, 100)
		dueDatesIndep[problem.PairKey{Src: print2.Key(), Dst: print1.Key()}] = 150
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

func TestFromResultSuccessRoundTripsJSON(t *testing.T) {
	inst := homogeneousCase(t, 5)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.BHCS)
	require.NoError(t, err)

	rep, err := report.FromResult(result, inst, report.RunMeta{
		Productivity: 0.7, Flexibility: 0.25, TimeOutValue: 5000,
		Jobs: inst.NumberOfJobs(), Machines: inst.NumberOfMachines(),
	}, nil)
	require.NoError(t, err)
	require.True(t, rep.Solved)
	require.NotNil(t, rep.MinMakespan)
	require.Equal(t, result.Makespan, *rep.MinMakespan)
	require.NotEmpty(t, rep.Schedule)
	require.NotNil(t, rep.Sequence)
	require.Empty(t, rep.Error)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, rep))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, float64(1), decoded["version"])
	require.Equal(t, true, decoded["solved"])
	require.Contains(t, decoded, "schedule")
	require.Contains(t, decoded, "sequence")
	require.NotContains(t, decoded, "error")
}

func TestFromResultRoundTripsCBOR(t *testing.T) {
	inst := homogeneousCase(t, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.BHCS)
	require.NoError(t, err)

	rep, err := report.FromResult(result, inst, report.RunMeta{Jobs: inst.NumberOfJobs(), Machines: inst.NumberOfMachines()}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCBOR(&buf, rep))
	require.NotEmpty(t, buf.Bytes())
}

func TestFromResultNoSolutionSetsErrorTaxonomy(t *testing.T) {
	inst := homogeneousCase(t, 2)
	result := solve.Result{Algorithm: solve.Sequence}
	rep, err := report.FromResult(result, inst, report.RunMeta{}, solve.ErrNoSolution)
	require.NoError(t, err)
	require.False(t, rep.Solved)
	require.Equal(t, report.ErrorNoSolution, rep.Error)
}

func TestFromResultDDAddsAnytimeFields(t *testing.T) {
	inst := homogeneousCase(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := solve.Solve(ctx, inst, solve.DD)
	require.NoError(t, err)

	rep, err := report.FromResult(result, inst, report.RunMeta{Jobs: inst.NumberOfJobs(), Machines: inst.NumberOfMachines()}, nil)
	require.NoError(t, err)
	require.NotNil(t, rep.LowerBound)
	require.NotEmpty(t, rep.Termination)
}
