package heuristics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
)

func TestSolveASAPBacktrack(t *testing.T) {
	inst := duplexTwoJobs(t)
	sol, err := heuristics.SolveASAPBacktrack(context.Background(), inst, time.Second)
	require.NoError(t, err)
	require.NotNil(t, sol)

	makespan, err := sol.RealMakespan(inst)
	require.NoError(t, err)
	require.Greater(t, makespan, int64(0))
}

func TestSolveASAPBacktrackCancelledContext(t *testing.T) {
	inst := duplexTwoJobs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := heuristics.SolveASAPBacktrack(ctx, inst, time.Second)
	require.Error(t, err)
}
