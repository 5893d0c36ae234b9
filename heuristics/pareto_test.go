package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
)

func TestSolveParetoFrontier(t *testing.T) {
	inst := duplexTwoJobs(t)
	frontier, err := heuristics.SolveParetoFrontier(inst)
	require.NoError(t, err)
	require.NotEmpty(t, frontier)

	for _, sol := range frontier {
		makespan, err := sol.RealMakespan(inst)
		require.NoError(t, err)
		require.Greater(t, makespan, int64(0))
	}
}

func TestSolveParetoFrontierRespectsMaxPartialSolutions(t *testing.T) {
	inst := duplexTwoJobs(t)
	frontier, err := heuristics.SolveParetoFrontier(inst, heuristics.WithMaxPartialSolutions(1))
	require.NoError(t, err)
	require.NotEmpty(t, frontier)
}
