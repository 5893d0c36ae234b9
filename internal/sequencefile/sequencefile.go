// File: sequencefile.go
// Role: §6.4's sequence file, the `--sequence-file` seed for the
// `sequence` algorithm (`ddseed` does not read it): `{"sequence": {"machineSequences":
// {"<machineId>": [[jobId, opId], ...]}}}` for a single shop, or
// `{"sequence": {"modules": {"<moduleId>": {"machineSequences": ...}}}}`
// for a modular run. Mirrors internal/report's Sequence document shape
// (§6.3's own "sequence" object) so a report this CLI writes can be fed
// straight back in as a seed.
package sequencefile

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// pairXML-style wire pair: [jobId, opId].
type opPair [2]int64

type machineSequenceDoc map[string][]opPair

type sequenceDoc struct {
	Sequence struct {
		MachineSequences machineSequenceDoc            `json:"machineSequences,omitempty"`
		Modules          map[string]moduleSequenceDoc   `json:"modules,omitempty"`
	} `json:"sequence"`
}

type moduleSequenceDoc struct {
	MachineSequences machineSequenceDoc `json:"machineSequences,omitempty"`
}

// ErrNoSequence is returned when a file has neither machineSequences nor
// modules.
var ErrNoSequence = fmt.Errorf("sequencefile: file names no sequence")

// Load reads a shop sequence file into a partial.MachinesSequences,
// ready for solve.WithSequenceSeed.
func Load(path string) (partial.MachinesSequences, error) {
	var doc sequenceDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Sequence.MachineSequences) == 0 {
		return nil, ErrNoSequence
	}
	return decodeMachineSequences(doc.Sequence.MachineSequences)
}

// LoadModular reads a modular sequence file into one
// partial.MachinesSequences per module id.
func LoadModular(path string) (map[modular.ModuleId]partial.MachinesSequences, error) {
	var doc sequenceDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Sequence.Modules) == 0 {
		return nil, ErrNoSequence
	}
	out := make(map[modular.ModuleId]partial.MachinesSequences, len(doc.Sequence.Modules))
	for idStr, moduleDoc := range doc.Sequence.Modules {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sequencefile: module id %q: %w", idStr, err)
		}
		seqs, err := decodeMachineSequences(moduleDoc.MachineSequences)
		if err != nil {
			return nil, fmt.Errorf("sequencefile: module %d: %w", id, err)
		}
		out[modular.ModuleId(id)] = seqs
	}
	return out, nil
}

// Save writes seqs as a shop sequence file.
func Save(path string, seqs partial.MachinesSequences) error {
	var doc sequenceDoc
	doc.Sequence.MachineSequences = encodeMachineSequences(seqs)
	return writeJSON(path, doc)
}

// SaveModular writes one partial.MachinesSequences per module as a
// modular sequence file.
func SaveModular(path string, seqs map[modular.ModuleId]partial.MachinesSequences) error {
	var doc sequenceDoc
	doc.Sequence.Modules = make(map[string]moduleSequenceDoc, len(seqs))
	for id, seq := range seqs {
		doc.Sequence.Modules[strconv.FormatInt(int64(id), 10)] = moduleSequenceDoc{
			MachineSequences: encodeMachineSequences(seq),
		}
	}
	return writeJSON(path, doc)
}

func decodeMachineSequences(doc machineSequenceDoc) (partial.MachinesSequences, error) {
	out := make(partial.MachinesSequences, len(doc))
	for idStr, pairs := range doc {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sequencefile: machine id %q: %w", idStr, err)
		}
		seq := make(partial.Sequence, len(pairs))
		for i, p := range pairs {
			seq[i] = problem.NewOperation(problem.JobId(p[0]), problem.OperationId(p[1]))
		}
		out[problem.MachineId(id)] = seq
	}
	return out, nil
}

func encodeMachineSequences(seqs partial.MachinesSequences) machineSequenceDoc {
	out := make(machineSequenceDoc, len(seqs))
	for m, seq := range seqs {
		pairs := make([]opPair, len(seq))
		for i, op := range seq {
			pairs[i] = opPair{int64(op.Job), int64(op.Op)}
		}
		out[strconv.FormatInt(int64(m), 10)] = pairs
	}
	return out
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("sequencefile: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("sequencefile: parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("sequencefile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sequencefile: write %s: %w", path, err)
	}
	return nil
}
