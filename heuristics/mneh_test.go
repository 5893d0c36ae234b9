package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
)

func TestSolveMNEHReturnsPositiveMakespan(t *testing.T) {
	inst := duplexTwoJobs(t)
	sol, err := heuristics.SolveMNEH(inst)
	require.NoError(t, err)
	require.NotNil(t, sol)

	reentrant := inst.ReEntrantMachines()[0]
	require.NotEmpty(t, sol.MachineSequence(reentrant))

	makespan, err := sol.RealMakespan(inst)
	require.NoError(t, err)
	require.Greater(t, makespan, int64(0))
}

func TestSolveMNEHNoReEntrantMachine(t *testing.T) {
	inst := duplexTwoJobs(t)
	_ = inst // sanity: duplexTwoJobs always has a re-entrant machine

	_, err := heuristics.SolveMNEHFromSeed(inst, 99, nil)
	require.Error(t, err)
}

func TestSolveMNEHRespectsMaxIterations(t *testing.T) {
	inst := duplexTwoJobs(t)
	sol, err := heuristics.SolveMNEH(inst, heuristics.WithMaxIterations(1))
	require.NoError(t, err)
	require.NotNil(t, sol)
}
