package sequencefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/sequencefile"
	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

func sampleSequences() partial.MachinesSequences {
	return partial.MachinesSequences{
		problem.MachineId(0): {
			cg.NewOperation(0, 0),
			cg.NewOperation(1, 0),
			cg.NewOperation(0, 1),
			cg.NewOperation(1, 1),
		},
	}
}

func TestSaveAndLoadShopSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")
	want := sampleSequences()
	require.NoError(t, sequencefile.Save(path, want))

	got, err := sequencefile.Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadShopSequenceRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sequence": {}}`), 0o644))

	_, err := sequencefile.Load(path)
	require.ErrorIs(t, err, sequencefile.ErrNoSequence)
}

func TestSaveAndLoadModularSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modular-seq.json")
	want := map[modular.ModuleId]partial.MachinesSequences{
		0: sampleSequences(),
		1: sampleSequences(),
	}
	require.NoError(t, sequencefile.SaveModular(path, want))

	got, err := sequencefile.LoadModular(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
