package cg_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
)

func TestGraph_AddVertexAndEdge(t *testing.T) {
	g := cg.New()
	op1 := cg.NewOperation(1, 0)
	op2 := cg.NewOperation(1, 1)

	v1, err := g.AddVertex(op1)
	require.NoError(t, err)
	v2, err := g.AddVertex(op2)
	require.NoError(t, err)

	_, err = g.AddVertex(op1)
	require.ErrorIs(t, err, cg.ErrVertexAlreadyExists)

	require.NoError(t, g.AddEdge(v1, v2, 10))
	require.True(t, g.HasEdge(v1, v2))
	w, err := g.GetWeight(v1, v2)
	require.NoError(t, err)
	require.Equal(t, cg.Delay(10), w)

	// Overwrite.
	require.NoError(t, g.AddEdge(v1, v2, 20))
	w, err = g.GetWeight(v1, v2)
	require.NoError(t, err)
	require.Equal(t, cg.Delay(20), w)
}

func TestGraph_AddEdgesRollback(t *testing.T) {
	g := cg.New()
	a, _ := g.AddVertex(cg.NewOperation(1, 0))
	b, _ := g.AddVertex(cg.NewOperation(1, 1))
	c, _ := g.AddVertex(cg.NewOperation(1, 2))

	// Pre-existing edge a->b.
	require.NoError(t, g.AddEdge(a, b, 1))

	edges := []cg.Edge{{Src: a, Dst: b, Weight: 99}, {Src: b, Dst: c, Weight: 5}}
	added, err := g.AddEdges(edges)
	require.NoError(t, err)
	// a->b already existed, so only b->c is reported as newly added.
	require.Len(t, added, 1)
	require.Equal(t, c, added[0].Dst)

	g.RemoveEdges(added)
	require.False(t, g.HasEdge(b, c))
	require.True(t, g.HasEdge(a, b)) // untouched
}

func TestGraph_MachineSourceAndTerminal(t *testing.T) {
	g := cg.New()
	src, err := g.AddMachineSource(5)
	require.NoError(t, err)
	require.True(t, g.IsSource(src))

	got, ok := g.MachineSource(5)
	require.True(t, ok)
	require.Equal(t, src, got)

	term, err := g.AddTerminal()
	require.NoError(t, err)
	gotTerm, ok := g.Terminal()
	require.True(t, ok)
	require.Equal(t, term, gotTerm)
}

func TestGraph_VertexOutOfRange(t *testing.T) {
	g := cg.New()
	_, err := g.GetWeight(42, 43)
	require.ErrorIs(t, err, cg.ErrVertexOutOfRange)
}

func TestGraph_Clone(t *testing.T) {
	g := cg.New()
	a, _ := g.AddVertex(cg.NewOperation(1, 0))
	b, _ := g.AddVertex(cg.NewOperation(1, 1))
	require.NoError(t, g.AddEdge(a, b, 7))

	clone := g.Clone()
	clone.RemoveEdge(a, b)

	require.True(t, g.HasEdge(a, b), "clone mutation must not affect original")
	require.False(t, clone.HasEdge(a, b))
}
