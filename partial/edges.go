// File: edges.go
// Role: edge derivation and trivial-solution helpers for chosen machine
// sequences. Grounded on the declared contract of original_source's
// fms::solvers::SolversUtils (include/fms/solvers/utils.hpp) — its
// implementation (src/solvers/utils.cpp) was not present in the retrieved
// tree, so the bodies here are an informed inference from the header's
// documented signatures plus the call sites in partial_solution.cpp and
// asap_backtrack.cpp, not a direct line-for-line port. See DESIGN.md.
package partial

import (
	"errors"
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// edgesFromSequence returns the chain of consecutive-operation edges
// implied by committing seq on machineId, weighted by the instance's
// processing+setup/maintenance query between each pair.
func edgesFromSequence(inst *problem.Instance, seq Sequence, machineId problem.MachineId) ([]cg.Edge, error) {
	g := inst.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	if len(seq) < 2 {
		return nil, nil
	}
	edges := make([]cg.Edge, 0, len(seq)-1)
	for i := 0; i+1 < len(seq); i++ {
		src, err := g.GetVertex(seq[i])
		if err != nil {
			return nil, fmt.Errorf("partial: edgesFromSequence: %w", err)
		}
		dst, err := g.GetVertex(seq[i+1])
		if err != nil {
			return nil, fmt.Errorf("partial: edgesFromSequence: %w", err)
		}
		weight := inst.Query(seq[i], seq[i+1])
		edges = append(edges, cg.Edge{Src: src, Dst: dst, Weight: weight})
	}
	return edges, nil
}

// GetChosenEdges returns the chain of edges for one machine's chosen
// sequence.
func (s *Solution) GetChosenEdges(inst *problem.Instance, machineId problem.MachineId) ([]cg.Edge, error) {
	seq, ok := s.chosenSequences[machineId]
	if !ok {
		return nil, nil
	}
	return edgesFromSequence(inst, seq, machineId)
}

// GetAllChosenEdges concatenates every machine's chosen-sequence edges.
func (s *Solution) GetAllChosenEdges(inst *problem.Instance) ([]cg.Edge, error) {
	var all []cg.Edge
	for m, seq := range s.chosenSequences {
		edges, err := edgesFromSequence(inst, seq, m)
		if err != nil {
			return nil, err
		}
		all = append(all, edges...)
	}
	return all, nil
}

// GetInferredInputSequence derives the order in which jobs should feed the
// instance's first machine from the committed order on the first
// re-entrant machine: the loop's visitation order pins the feed order of
// fresh sheets, since a re-entrant line can only interleave a job's later
// passes with the arrival order of its first pass.
func (s *Solution) GetInferredInputSequence(inst *problem.Instance) (Sequence, error) {
	reentrant, ok := inst.FirstReEntrantID()
	if !ok {
		return nil, ErrNoReEntrantMachine
	}
	machine := inst.ReEntrantMachineID(reentrant)
	loopSeq := s.chosenSequences[machine]

	seen := map[problem.JobId]struct{}{}
	inferred := make(Sequence, 0, len(loopSeq))
	for _, op := range loopSeq {
		if op.IsMaintenance() {
			continue
		}
		if _, dup := seen[op.Job]; dup {
			continue
		}
		seen[op.Job] = struct{}{}
		firstOps, err := inst.JobOperations(op.Job)
		if err != nil || len(firstOps) == 0 {
			continue
		}
		inferred = append(inferred, firstOps[0])
	}
	return inferred, nil
}

// AddInferredInputSequence commits GetInferredInputSequence's result as the
// chosen sequence for the instance's first machine.
func (s *Solution) AddInferredInputSequence(inst *problem.Instance) error {
	seq, err := s.GetInferredInputSequence(inst)
	if err != nil {
		return err
	}
	machines := inst.Machines()
	if len(machines) == 0 {
		return ErrUnknownMachineSequence
	}
	s.chosenSequences[machines[0]] = seq
	return nil
}

// GetAllAndInferredEdges returns every committed edge plus the edges
// implied by the inferred first-machine input sequence.
func (s *Solution) GetAllAndInferredEdges(inst *problem.Instance) ([]cg.Edge, error) {
	all, err := s.GetAllChosenEdges(inst)
	if err != nil {
		return nil, err
	}
	inferred, err := s.GetInferredInputSequence(inst)
	if err != nil {
		if errors.Is(err, ErrNoReEntrantMachine) {
			return all, nil
		}
		return nil, err
	}
	machines := inst.Machines()
	if len(machines) == 0 {
		return all, nil
	}
	inferredEdges, err := edgesFromSequence(inst, inferred, machines[0])
	if err != nil {
		return nil, err
	}
	return append(all, inferredEdges...), nil
}

// CreateTrivialSolution seeds a baseline partial solution with each
// machine's sequence set to the instance's default job output order, one
// operation per job per machine visit.
func CreateTrivialSolution(inst *problem.Instance) *Solution {
	sequences := MachinesSequences{}
	for _, m := range inst.Machines() {
		sequences[m] = CreateMachineTrivialSolution(inst, m)
	}
	return New(sequences, nil)
}

// CreateMachineTrivialSolution returns the default trivial sequence for a
// single machine: each job's operations on that machine, in the
// instance's default output order.
func CreateMachineTrivialSolution(inst *problem.Instance, machineId problem.MachineId) Sequence {
	var seq Sequence
	for _, job := range inst.JobsOutput() {
		seq = append(seq, inst.JobOperationsOnMachine(job, machineId)...)
	}
	return seq
}
