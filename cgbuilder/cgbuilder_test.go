package cgbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// twoByTwo builds a 2-job, 2-machine fixed-order instance with no
// re-entrancy, mirroring the teacher style of small hand-built fixtures for
// graph-construction tests.
func twoByTwo(t *testing.T) *problem.Instance {
	t.Helper()
	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }

	jobs := map[problem.JobId][]problem.Operation{
		0: {op(0, 0), op(0, 1)},
		1: {op(1, 0), op(1, 1)},
	}
	machineMapping := map[problem.OperationKey]problem.MachineId{
		op(0, 0).Key(): 0, op(0, 1).Key(): 1,
		op(1, 0).Key(): 0, op(1, 1).Key(): 1,
	}
	processing := problem.NewDefaultMap[problem.OperationKey, problem.Delay](0)
	processing.Set(op(0, 0).Key(), 5)
	processing.Set(op(0, 1).Key(), 7)
	processing.Set(op(1, 0).Key(), 3)
	processing.Set(op(1, 1).Key(), 4)

	inst, err := problem.New(problem.Config{
		Name:            "2x2",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: processing,
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
		ShopType:        problem.ShopFixedOrder,
	})
	require.NoError(t, err)
	return inst
}

func TestFixedOrder_BuildsFeasibleGraph(t *testing.T) {
	inst := twoByTwo(t)
	g, err := cgbuilder.Build(inst)
	require.NoError(t, err)
	require.NotNil(t, g)

	times := paths.InitializeASAPST(g, nil, true)
	result := paths.ComputeASAPST(g, times)
	require.False(t, result.HasPositiveCycle())

	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	v00, err := g.GetVertex(op(0, 0))
	require.NoError(t, err)
	v10, err := g.GetVertex(op(1, 0))
	require.NoError(t, err)

	// Job 1's first op on machine 0 must start no earlier than job 0's first
	// op finishes (pinning edge + same-machine inter-job edge both apply).
	require.GreaterOrEqual(t, times[v10], times[v00]+5)
}

func TestFixedOrder_WithJobOrderReversesPinning(t *testing.T) {
	inst := twoByTwo(t)
	g, err := cgbuilder.FixedOrder(inst, cgbuilder.WithJobOrder([]problem.JobId{1, 0}))
	require.NoError(t, err)

	times := paths.InitializeASAPST(g, nil, true)
	result := paths.ComputeASAPST(g, times)
	require.False(t, result.HasPositiveCycle())

	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	v00, err := g.GetVertex(op(0, 0))
	require.NoError(t, err)
	v10, err := g.GetVertex(op(1, 0))
	require.NoError(t, err)

	// With job 1 visited first, job 0's first op is pinned after job 1's.
	require.GreaterOrEqual(t, times[v00], times[v10]+3)
}

func TestJobShop_ReachesTerminal(t *testing.T) {
	op := func(job cg.JobId, opID cg.OperationId) cg.Operation { return cg.NewOperation(job, opID) }
	jobs := map[problem.JobId][]problem.Operation{
		0: {op(0, 0), op(0, 1)},
		1: {op(1, 0)},
	}
	machineMapping := map[problem.OperationKey]problem.MachineId{
		op(0, 0).Key(): 0, op(0, 1).Key(): 1,
		op(1, 0).Key(): 0,
	}
	inst, err := problem.New(problem.Config{
		Name:            "jobshop",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: problem.NewDefaultMap[problem.OperationKey, problem.Delay](2),
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
		ShopType:        problem.ShopJobShop,
	})
	require.NoError(t, err)

	g, err := cgbuilder.JobShop(inst)
	require.NoError(t, err)

	term, ok := g.Terminal()
	require.True(t, ok)
	require.True(t, len(g.Incoming(term)) > 0)
}
