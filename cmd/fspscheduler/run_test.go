package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const twoMachineFlowShop = `<?xml version="1.0"?>
<SPInstance type="FORPFSSPSD">
  <jobs count="2"/>
  <flowVector>
    <component index="0" value="0" job="0"/>
    <component index="1" value="1" job="0"/>
    <component index="2" value="0" job="0"/>
    <component index="0" value="0" job="1"/>
    <component index="1" value="1" job="1"/>
    <component index="2" value="0" job="1"/>
  </flowVector>
  <processingTimes default="10"/>
  <sizes default="1"/>
  <setupTimes default="0"/>
</SPInstance>`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunShopWritesJSONReport(t *testing.T) {
	input := writeFixture(t, twoMachineFlowShop)
	output := filepath.Join(t.TempDir(), "report.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--input", input, "--output", output, "--algorithm", "bhcs"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, true, doc["solved"])
	require.Contains(t, doc, "schedule")
	require.Contains(t, doc, "sequence")
	require.NotContains(t, doc, "error")
}

func TestRunShopWritesCBORReport(t *testing.T) {
	input := writeFixture(t, twoMachineFlowShop)
	output := filepath.Join(t.TempDir(), "report.cbor")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--input", input, "--output", output, "--output-format", "cbor"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestRunRejectsMissingRequiredFlags(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func TestListAlgorithmsPrintsAndExits(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--list-algorithms"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "bhcs")
	require.Contains(t, out.String(), "bnb")
}

func TestRunSequenceAlgorithmRoundTripsSequenceFile(t *testing.T) {
	input := writeFixture(t, twoMachineFlowShop)
	seqPath := filepath.Join(t.TempDir(), "seed.json")
	output := filepath.Join(t.TempDir(), "report.json")

	seedCmd := newRootCommand()
	seedCmd.SetArgs([]string{"--input", input, "--output", output, "--algorithm", "bhcs", "--sequence-file", seqPath})
	require.NoError(t, seedCmd.Execute())

	_, err := os.Stat(seqPath)
	require.NoError(t, err)

	replayCmd := newRootCommand()
	replayOutput := filepath.Join(t.TempDir(), "replay.json")
	replayCmd.SetArgs([]string{"--input", input, "--output", replayOutput, "--algorithm", "sequence", "--sequence-file", seqPath})
	require.NoError(t, replayCmd.Execute())

	data, err := os.ReadFile(replayOutput)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, true, doc["solved"])
}
