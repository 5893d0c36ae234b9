// File: report.go
// Role: the §6.3 output document: a Report struct shaped exactly like the
// JSON/CBOR schema the spec names, built from a solve.Result (and, for
// modular runs, a modular.ProductionLineSolution), and serialized through
// encoding/json or github.com/fxamacker/cbor/v2 depending on
// --output-format. Grounded on original_source's reportData-style
// solveData map (fms::cli reporting the same key set this schema lists)
// re-expressed as a typed struct rather than an untyped property map,
// matching how this codebase prefers typed structs over bags of
// interface{} everywhere else.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

// ErrorKind is one of §6.3's failure taxonomy values.
type ErrorKind string

const (
	ErrorScheduler      ErrorKind = "scheduler"
	ErrorNoSolution     ErrorKind = "no-solution"
	ErrorNoConvergence  ErrorKind = "no-convergence"
	ErrorLocalScheduler ErrorKind = "local-scheduler"
	ErrorTimeOut        ErrorKind = "time-out"
)

// Termination is DD's own outcome taxonomy (§6.3's "termination" field).
type Termination string

const (
	TerminationOptimal  Termination = "optimal"
	TerminationTimeOut  Termination = "time-out"
	TerminationNoSolution Termination = "no-solution"
)

// schemaVersion is this CLI's report format version.
const schemaVersion = 1

// Schedule is a job -> operation -> start-time table, §6.3's nested
// "schedule" object.
type Schedule map[problem.JobId]map[problem.OperationId]problem.Delay

// MachineSequences is a machine -> ordered (job, op) pair list, §6.3's
// "sequence.machineSequences" object.
type MachineSequences map[problem.MachineId][][2]int64

// SequenceBlock is §6.3's "sequence" object, covering both the shop and
// modular shapes.
type SequenceBlock struct {
	MachineSequences MachineSequences                  `json:"machineSequences,omitempty" cbor:"machineSequences,omitempty"`
	Modules          map[modular.ModuleId]MachineSequences `json:"modules,omitempty" cbor:"modules,omitempty"`
}

// AnytimePoint is one [axis, bound] sample. DD has no direct wall-clock
// read inside the search loop (dd.AnytimeSample timestamps by iteration
// count instead, see dd/dd.go), so the first element here is an iteration
// index rather than true elapsed seconds; documented in DESIGN.md.
type AnytimePoint [2]float64

// Report is the full §6.3 output document.
type Report struct {
	Version      int     `json:"version" cbor:"version"`
	Solved       bool    `json:"solved" cbor:"solved"`
	Timeout      bool    `json:"timeout" cbor:"timeout"`
	Productivity float64 `json:"productivity" cbor:"productivity"`
	Flexibility  float64 `json:"flexibility" cbor:"flexibility"`
	TimeOutValue int     `json:"timeOutValue" cbor:"timeOutValue"`
	Jobs         int     `json:"jobs" cbor:"jobs"`
	Machines     int     `json:"machines" cbor:"machines"`
	TotalTime    float64 `json:"totalTime" cbor:"totalTime"`

	MinMakespan  *problem.Delay `json:"minMakespan,omitempty" cbor:"minMakespan,omitempty"`
	BestSolution *int64         `json:"bestSolution,omitempty" cbor:"bestSolution,omitempty"`
	Schedule     Schedule       `json:"schedule,omitempty" cbor:"schedule,omitempty"`
	Sequence     *SequenceBlock `json:"sequence,omitempty" cbor:"sequence,omitempty"`

	// Solution carries the modular nested moduleId -> jobId -> opId ->
	// startTime shape §6.3 names for modular runs; empty for single-shop
	// runs, which use Schedule instead.
	Solution map[modular.ModuleId]Schedule `json:"solution,omitempty" cbor:"solution,omitempty"`

	Error ErrorKind `json:"error,omitempty" cbor:"error,omitempty"`

	AnytimeSolutions []AnytimePoint `json:"anytime-solutions,omitempty" cbor:"anytime-solutions,omitempty"`
	AnytimeBounds    []AnytimePoint `json:"anytime-bounds,omitempty" cbor:"anytime-bounds,omitempty"`
	LowerBound       *problem.Delay `json:"lowerBound,omitempty" cbor:"lowerBound,omitempty"`
	Termination      Termination    `json:"termination,omitempty" cbor:"termination,omitempty"`
}

// RunMeta carries the CLI-level fields §6.3 reports alongside the solver
// outcome: the ranking weights and time budget the run was invoked with,
// and the instance's own job/machine counts.
type RunMeta struct {
	Productivity float64
	Flexibility  float64
	TimeOutValue int
	Jobs         int
	Machines     int
	TotalTime    float64
}

// FromResult builds a single-shop Report from a solve.Result.
func FromResult(result solve.Result, inst *problem.Instance, meta RunMeta, solveErr error) (Report, error) {
	rep := Report{
		Version:      schemaVersion,
		Solved:       solveErr == nil && result.Solution != nil,
		Timeout:      result.TimedOut,
		Productivity: meta.Productivity,
		Flexibility:  meta.Flexibility,
		TimeOutValue: meta.TimeOutValue,
		Jobs:         meta.Jobs,
		Machines:     meta.Machines,
		TotalTime:    meta.TotalTime,
	}

	if result.Algorithm == solve.DD {
		lb := result.LowerBound
		rep.LowerBound = &lb
		rep.Termination = terminationFor(result, solveErr)
	}

	if solveErr != nil || result.Solution == nil {
		rep.Error = classifyError(result, solveErr)
		return rep, nil
	}

	makespan := result.Makespan
	id := result.Solution.ID()
	rep.MinMakespan = &makespan
	rep.BestSolution = &id

	schedule, err := buildSchedule(inst, result.Solution)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	rep.Schedule = schedule
	rep.Sequence = &SequenceBlock{MachineSequences: buildMachineSequences(result.Solution.ChosenSequencesPerMachine())}

	if len(result.Anytime) > 0 {
		rep.AnytimeSolutions = make([]AnytimePoint, len(result.Anytime))
		rep.AnytimeBounds = make([]AnytimePoint, len(result.Anytime))
		for i, s := range result.Anytime {
			rep.AnytimeSolutions[i] = AnytimePoint{float64(s.Iteration), float64(s.UpperBound)}
			rep.AnytimeBounds[i] = AnytimePoint{float64(s.Iteration), float64(s.LowerBound)}
		}
	}
	return rep, nil
}

// FromModularResult builds a modular-run Report from a modular.Result
// (modular.SolveBroadcast's or modular.SolveCocktail's return value).
func FromModularResult(pl *modular.ProductionLine, result modular.Result, meta RunMeta, modularErr error) (Report, error) {
	rep := Report{
		Version:      schemaVersion,
		Solved:       modularErr == nil && result.Converged,
		Productivity: meta.Productivity,
		Flexibility:  meta.Flexibility,
		TimeOutValue: meta.TimeOutValue,
		Jobs:         meta.Jobs,
		Machines:     meta.Machines,
		TotalTime:    meta.TotalTime,
	}
	if modularErr != nil || !result.Converged {
		rep.Error = ErrorNoConvergence
		if modularErr != nil {
			rep.Error = ErrorScheduler
		}
		return rep, nil
	}

	makespan := result.Solution.Makespan
	rep.MinMakespan = &makespan

	rep.Solution = make(map[modular.ModuleId]Schedule, len(result.Solution.Modules))
	modules := map[modular.ModuleId]MachineSequences{}
	for _, m := range pl.Modules() {
		sol, ok := result.Solution.Modules[m.ID]
		if !ok {
			continue
		}
		schedule, err := buildSchedule(m.Instance, sol)
		if err != nil {
			return Report{}, fmt.Errorf("report: module %d: %w", m.ID, err)
		}
		rep.Solution[m.ID] = schedule
		modules[m.ID] = buildMachineSequences(sol.ChosenSequencesPerMachine())
	}
	rep.Sequence = &SequenceBlock{Modules: modules}
	return rep, nil
}

func buildSchedule(inst *problem.Instance, sol *partial.Solution) (Schedule, error) {
	g := inst.Graph()
	if g == nil {
		return nil, fmt.Errorf("instance %q has no attached graph", inst.Name())
	}
	times := sol.ASAPST()
	schedule := make(Schedule, inst.NumberOfJobs())
	for job, ops := range inst.Jobs() {
		byOp := make(map[problem.OperationId]problem.Delay, len(ops))
		for _, op := range ops {
			v, err := g.GetVertex(op)
			if err != nil {
				return nil, err
			}
			byOp[op.Op] = times[v]
		}
		schedule[job] = byOp
	}
	return schedule, nil
}

func buildMachineSequences(seqs partial.MachinesSequences) MachineSequences {
	out := make(MachineSequences, len(seqs))
	for m, seq := range seqs {
		pairs := make([][2]int64, len(seq))
		for i, op := range seq {
			pairs[i] = [2]int64{int64(op.Job), int64(op.Op)}
		}
		out[m] = pairs
	}
	return out
}

func classifyError(result solve.Result, err error) ErrorKind {
	if result.TimedOut {
		return ErrorTimeOut
	}
	if err != nil {
		return ErrorNoSolution
	}
	return ErrorScheduler
}

func terminationFor(result solve.Result, err error) Termination {
	switch {
	case result.Optimal:
		return TerminationOptimal
	case result.TimedOut:
		return TerminationTimeOut
	case err != nil:
		return TerminationNoSolution
	default:
		return TerminationTimeOut
	}
}

// WriteJSON serializes rep as pretty-printed JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteCBOR serializes rep as CBOR.
func WriteCBOR(w io.Writer, rep Report) error {
	data, err := cbor.Marshal(rep)
	if err != nil {
		return fmt.Errorf("report: cbor marshal: %w", err)
	}
	_, err = w.Write(data)
	return err
}
