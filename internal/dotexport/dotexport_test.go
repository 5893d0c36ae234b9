package dotexport_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/dotexport"
)

func TestWriteProducesValidDotSkeleton(t *testing.T) {
	g := cg.New()
	a, err := g.AddVertex(cg.NewOperation(0, 0))
	require.NoError(t, err)
	b, err := g.AddVertex(cg.NewOperation(0, 1))
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, 10))

	var buf bytes.Buffer
	require.NoError(t, dotexport.Write(&buf, g, nil))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph constraint_graph {"))
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	require.Contains(t, out, fmt.Sprintf("%d -> %d", a, b))
}

func TestWriteHighlightsPositiveCycle(t *testing.T) {
	g := cg.New()
	a, err := g.AddVertex(cg.NewOperation(0, 0))
	require.NoError(t, err)
	b, err := g.AddVertex(cg.NewOperation(0, 1))
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, 10))

	var buf bytes.Buffer
	require.NoError(t, dotexport.Write(&buf, g, []cg.Edge{{Src: a, Dst: b, Weight: 10}}))
	require.Contains(t, buf.String(), "color=red")
}
