package maintenance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/maintenance"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

func duplexTwoJobsWithMaintenance(t *testing.T, min, max problem.Delay) *problem.Instance {
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

	inst, err := problem.New(problem.Config{
		Name:            "duplex2-maint",
		Jobs:            jobs,
		MachineMapping:  machineMapping,
		ProcessingTimes: problem.NewDefaultMap[problem.OperationKey, problem.Delay](2),
		SetupTimes:      problem.NewPairDefaultMap(0),
		SheetSizes:      problem.NewDefaultMap[problem.OperationKey, uint](1),
		ShopType:        problem.ShopFixedOrder,
	})
	require.NoError(t, err)

	policy := problem.NewMaintenancePolicy(1, 1, 3, min, max)
	inst.SetMaintenancePolicy(policy)

	_, err = cgbuilder.Build(inst)
	require.NoError(t, err)
	return inst
}

func TestNewTriggerIsIdempotentWhenNoneDue(t *testing.T) {
	// uniform sheet sizes mean the idle tracker never accumulates idle
	// time (every transition resets to zero), so a low threshold still
	// never fires; this exercises the full scan without a trigger.
	inst := duplexTwoJobsWithMaintenance(t, 1, 2)
	reentrant := inst.ReEntrantMachines()[0]

	sol, err := heuristics.Solve(inst)
	require.NoError(t, err)

	trigger := maintenance.NewTrigger(maintenance.FastPath)
	next, err := trigger(inst, reentrant, sol)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.GreaterOrEqual(t, next.MaintCount(), sol.MaintCount())

	// the sequence must remain a valid, non-empty chain for the machine.
	require.NotEmpty(t, next.MachineSequence(reentrant))
}

func TestNewTriggerNoOpWhenOutsideThreshold(t *testing.T) {
	inst := duplexTwoJobsWithMaintenance(t, 10_000, 20_000)
	reentrant := inst.ReEntrantMachines()[0]

	sol, err := heuristics.Solve(inst)
	require.NoError(t, err)

	trigger := maintenance.NewTrigger(maintenance.Strict)
	next, err := trigger(inst, reentrant, sol)
	require.NoError(t, err)
	require.Equal(t, sol.MaintCount(), next.MaintCount())
}

func TestNewTriggerRejectsNonReEntrantMachine(t *testing.T) {
	inst := duplexTwoJobsWithMaintenance(t, 1, 2)
	sol, err := heuristics.Solve(inst)
	require.NoError(t, err)

	trigger := maintenance.NewTrigger(maintenance.FastPath)
	_, err = trigger(inst, problem.MachineId(2), sol)
	require.ErrorIs(t, err, maintenance.ErrNoReEntrantMachine)
}
