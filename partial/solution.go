// File: solution.go
// Role: PartialSolution (§4.5), grounded on
// original_source's fms::solvers::PartialSolution
// (include/fms/solvers/partial_solution.hpp,
// src/solvers/partial_solution.cpp): an immutable-by-convention, per-
// machine chosen-operation sequence plus cursors into it (last inserted,
// first feasible, first maintenance edge) and the scalar ranking fields
// solvers compare partial solutions by.
package partial

import (
	"sync/atomic"

	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Sequence is the chosen operation order for one machine.
type Sequence = []problem.Operation

// MachinesSequences maps each machine to its chosen operation order.
type MachinesSequences map[problem.MachineId]Sequence

var nextID atomic.Int64

// Solution is a partial schedule: the operations chosen so far on every
// machine, the ASAP start times that resulted from committing them, and
// bookkeeping cursors/scalars used by the search heuristics.
type Solution struct {
	chosenSequences MachinesSequences
	lastInsertedEdge map[problem.MachineId]int
	firstFeasibleEdge map[problem.MachineId]int
	firstMaintEdge    map[problem.MachineId]int
	asapst paths.PathTimes

	ranking                       float64
	avgProductivity               problem.Delay
	makespanLastScheduledJob      problem.Delay
	earliestStartFutureOperation  problem.Delay
	nrOpsInLoop                   uint

	id, prevID int64
	maintCount, repairCount, reprintCount uint
}

// New creates a fresh partial solution from an initial per-machine sequence
// assignment and ASAP start times, with empty cursor maps (every machine
// starts at cursor 0).
func New(sequences MachinesSequences, asapst paths.PathTimes) *Solution {
	if sequences == nil {
		sequences = MachinesSequences{}
	}
	return &Solution{
		chosenSequences:   sequences,
		lastInsertedEdge:  map[problem.MachineId]int{},
		firstFeasibleEdge: map[problem.MachineId]int{},
		firstMaintEdge:    map[problem.MachineId]int{},
		asapst:            asapst,
		ranking:           -1,
		avgProductivity:   -1,
		makespanLastScheduledJob: -1,
		earliestStartFutureOperation: -1,
		id:     nextID.Add(1),
		prevID: -1,
	}
}

// MachineSequence returns the chosen sequence for a machine (nil if none
// recorded yet).
func (s *Solution) MachineSequence(m problem.MachineId) Sequence { return s.chosenSequences[m] }

// SetMachineSequence replaces the chosen sequence for a machine.
func (s *Solution) SetMachineSequence(m problem.MachineId, seq Sequence) {
	s.chosenSequences[m] = seq
}

// ChosenSequencesPerMachine returns every machine's chosen sequence.
func (s *Solution) ChosenSequencesPerMachine() MachinesSequences { return s.chosenSequences }

// ASAPST returns the ASAP start times this solution was evaluated against.
func (s *Solution) ASAPST() paths.PathTimes { return s.asapst }

// SetASAPST replaces the recorded ASAP start times.
func (s *Solution) SetASAPST(times paths.PathTimes) { s.asapst = times }

// Makespan returns the last entry of ASAPST, or -1 if empty.
func (s *Solution) Makespan() problem.Delay {
	if len(s.asapst) == 0 {
		return -1
	}
	return s.asapst[len(s.asapst)-1]
}

// RealMakespan returns the completion time of the instance's last job's
// last operation: its ASAP start time plus its processing time.
func (s *Solution) RealMakespan(inst *problem.Instance) (problem.Delay, error) {
	jobsOutput := inst.JobsOutput()
	if len(jobsOutput) == 0 {
		return 0, ErrUnknownMachineSequence
	}
	lastJob := jobsOutput[len(jobsOutput)-1]
	ops, err := inst.JobOperations(lastJob)
	if err != nil || len(ops) == 0 {
		return 0, ErrUnknownMachineSequence
	}
	lastOp := ops[len(ops)-1]

	g := inst.Graph()
	if g == nil {
		return 0, ErrNoGraph
	}
	v, err := g.GetVertex(lastOp)
	if err != nil {
		return 0, err
	}
	return s.asapst[v] + inst.ProcessingTime(lastOp), nil
}

// ID returns this solution's unique id.
func (s *Solution) ID() int64 { return s.id }

// PrevID returns the id of the solution this one was derived from, or -1.
func (s *Solution) PrevID() int64 { return s.prevID }

// Ranking returns the scalar ranking assigned by a heuristic.
func (s *Solution) Ranking() float64 { return s.ranking }

// SetRanking assigns a scalar ranking.
func (s *Solution) SetRanking(v float64) { s.ranking = v }

// AverageProductivity returns the recorded average productivity.
func (s *Solution) AverageProductivity() problem.Delay { return s.avgProductivity }

// SetAverageProductivity records the average productivity.
func (s *Solution) SetAverageProductivity(v problem.Delay) { s.avgProductivity = v }

// MakespanLastScheduledJob returns the makespan as of the last job
// scheduled (distinct from Makespan, which reflects all committed ops).
func (s *Solution) MakespanLastScheduledJob() problem.Delay { return s.makespanLastScheduledJob }

// SetMakespanLastScheduledJob records the makespan as of the last
// scheduled job.
func (s *Solution) SetMakespanLastScheduledJob(v problem.Delay) { s.makespanLastScheduledJob = v }

// EarliestStartFutureOperation returns the earliest start time of any
// not-yet-scheduled operation.
func (s *Solution) EarliestStartFutureOperation() problem.Delay {
	return s.earliestStartFutureOperation
}

// SetEarliestStartFutureOperation records that time.
func (s *Solution) SetEarliestStartFutureOperation(v problem.Delay) {
	s.earliestStartFutureOperation = v
}

// NrOpsInLoop returns how many operations are committed on the re-entrant
// machine's loop.
func (s *Solution) NrOpsInLoop() uint { return s.nrOpsInLoop }

// SetNrOpsInLoop records that count.
func (s *Solution) SetNrOpsInLoop(n uint) { s.nrOpsInLoop = n }

// MaintCount, RepairCount and ReprintCount report bookkeeping counters
// carried across Add/Remove.
func (s *Solution) MaintCount() uint   { return s.maintCount }
func (s *Solution) RepairCount() uint  { return s.repairCount }
func (s *Solution) ReprintCount() uint { return s.reprintCount }

func (s *Solution) SetMaintCount(v uint)   { s.maintCount = v }
func (s *Solution) SetRepairCount(v uint)  { s.repairCount = v }
func (s *Solution) SetReprintCount(v uint) { s.reprintCount = v }
func (s *Solution) IncrMaintCount()        { s.maintCount++ }
func (s *Solution) IncrRepairCount()       { s.repairCount++ }

// SetFirstFeasibleEdge overrides the first-feasible-edge cursor for a
// machine.
func (s *Solution) SetFirstFeasibleEdge(m problem.MachineId, v int) { s.firstFeasibleEdge[m] = v }

// FirstFeasibleIndex returns the raw first-feasible-edge cursor for a
// machine, for callers that need to index into MachineSequence directly.
func (s *Solution) FirstFeasibleIndex(m problem.MachineId) int { return s.firstFeasibleEdge[m] }

// SetFirstMaintEdge overrides the first-maintenance-edge cursor.
func (s *Solution) SetFirstMaintEdge(m problem.MachineId, v int) { s.firstMaintEdge[m] = v }

// FirstPossibleOp returns the operation at the first-feasible-edge cursor
// for a machine (the earliest position a new insertion may target).
func (s *Solution) FirstPossibleOp(m problem.MachineId) (problem.Operation, error) {
	seq := s.chosenSequences[m]
	idx := s.firstFeasibleEdge[m]
	if idx < 0 || idx >= len(seq) {
		return problem.Operation{}, ErrPositionOutOfRange
	}
	return seq[idx], nil
}

// FirstMaintOp returns the operation at the first-maintenance-edge cursor
// for a machine.
func (s *Solution) FirstMaintOp(m problem.MachineId) (problem.Operation, error) {
	seq := s.chosenSequences[m]
	idx := s.firstMaintEdge[m]
	if idx < 0 || idx >= len(seq) {
		return problem.Operation{}, ErrPositionOutOfRange
	}
	return seq[idx], nil
}

// LatestOp returns the operation at the last-inserted-edge cursor for a
// machine.
func (s *Solution) LatestOp(m problem.MachineId) (problem.Operation, error) {
	seq := s.chosenSequences[m]
	idx := s.lastInsertedEdge[m]
	if idx < 0 || idx >= len(seq) {
		return problem.Operation{}, ErrPositionOutOfRange
	}
	return seq[idx], nil
}

func cloneSequences(src MachinesSequences) MachinesSequences {
	dst := make(MachinesSequences, len(src))
	for m, seq := range src {
		cp := make(Sequence, len(seq))
		copy(cp, seq)
		dst[m] = cp
	}
	return dst
}

func cloneCursors(src map[problem.MachineId]int) map[problem.MachineId]int {
	dst := make(map[problem.MachineId]int, len(src))
	for m, v := range src {
		dst[m] = v
	}
	return dst
}

// Add returns a new solution with opt.CurOp inserted into machineId's
// sequence at opt.Position, mirroring partial_solution.cpp's add: the
// last-inserted-edge cursor always advances past the insertion point, but
// a maintenance insertion only shifts the first-feasible-edge cursor by
// one, so it keeps pointing at the same operation (maintenance does not
// consume a production slot).
func (s *Solution) Add(machineId problem.MachineId, opt SchedulingOption, asapst []problem.Delay) (*Solution, error) {
	if opt.Position < 0 || opt.Position > len(s.chosenSequences[machineId]) {
		return nil, ErrPositionOutOfRange
	}
	newSeqs := cloneSequences(s.chosenSequences)
	seq := newSeqs[machineId]
	seq = append(seq, problem.Operation{})
	copy(seq[opt.Position+1:], seq[opt.Position:])
	seq[opt.Position] = opt.CurOp
	newSeqs[machineId] = seq

	newLast := cloneCursors(s.lastInsertedEdge)
	newLast[machineId] = opt.Position + 1

	newFirstMaint := cloneCursors(s.firstMaintEdge)

	newFirstFeasible := cloneCursors(s.firstFeasibleEdge)
	if opt.IsMaint {
		newFirstFeasible[machineId] = newFirstFeasible[machineId] + 1
	} else {
		newFirstFeasible[machineId] = opt.Position + 1
	}

	next := &Solution{
		chosenSequences:   newSeqs,
		lastInsertedEdge:  newLast,
		firstFeasibleEdge: newFirstFeasible,
		firstMaintEdge:    newFirstMaint,
		asapst:            asapst,
		ranking:           -1,
		avgProductivity:   -1,
		makespanLastScheduledJob:     -1,
		earliestStartFutureOperation: -1,
		id:           nextID.Add(1),
		prevID:       s.id,
		maintCount:   s.maintCount,
		repairCount:  s.repairCount,
		reprintCount: s.reprintCount,
	}
	return next, nil
}

// Remove returns a new solution with the operation at opt.Position removed
// from machineId's sequence, mirroring partial_solution.cpp's remove: the
// last-inserted-edge cursor only moves back when the removal happened
// before it (after=false); repair always removes from after the last
// inserted edge, so the common case passes after=true.
func (s *Solution) Remove(machineId problem.MachineId, opt SchedulingOption, asapst []problem.Delay, after bool) (*Solution, error) {
	seq := s.chosenSequences[machineId]
	if opt.Position < 0 || opt.Position >= len(seq) {
		return nil, ErrPositionOutOfRange
	}
	newSeqs := cloneSequences(s.chosenSequences)
	newSeq := append(append(Sequence{}, seq[:opt.Position]...), seq[opt.Position+1:]...)
	newSeqs[machineId] = newSeq

	newLast := cloneCursors(s.lastInsertedEdge)
	if !after {
		newLast[machineId] = newLast[machineId] - 1
	}

	newFirstMaint := cloneCursors(s.firstMaintEdge)

	newFirstFeasible := cloneCursors(s.firstFeasibleEdge)
	newFirstFeasible[machineId] = newFirstFeasible[machineId] - 1

	next := &Solution{
		chosenSequences:   newSeqs,
		lastInsertedEdge:  newLast,
		firstFeasibleEdge: newFirstFeasible,
		firstMaintEdge:    newFirstMaint,
		asapst:            asapst,
		ranking:           -1,
		avgProductivity:   -1,
		makespanLastScheduledJob:     -1,
		earliestStartFutureOperation: -1,
		id:           nextID.Add(1),
		prevID:       s.id,
		maintCount:   s.maintCount,
		repairCount:  s.repairCount,
		reprintCount: s.reprintCount,
	}
	return next, nil
}

// LessEq implements the domination relationship used by the multi-
// dimensional heuristic's Pareto pruning (§4.6, §8): lhs dominates rhs when
// it is no worse in makespan-so-far and earliest future start, and no
// fewer ops are committed on the re-entrant loop.
func (lhs *Solution) LessEq(rhs *Solution) bool {
	return lhs.makespanLastScheduledJob <= rhs.makespanLastScheduledJob &&
		lhs.earliestStartFutureOperation <= rhs.earliestStartFutureOperation &&
		lhs.nrOpsInLoop >= rhs.nrOpsInLoop
}
