// File: export.go
// Role: thin exported wrappers around BHCS's option-generation and
// evaluation machinery, so the exact search (bnb) can expand every
// feasible option of a node instead of just the ranked winner, grounded
// on original_source's branch_bound.cpp calling directly into
// forward_heuristic.hpp's createOptions/evaluateOptionFeasibility rather
// than duplicating them.
package heuristics

import (
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Candidate pairs a resulting partial solution with the insertion option
// that produced it.
type Candidate struct {
	Sol *partial.Solution
	Opt partial.SchedulingOption
}

// CreateInitialSequence seeds the re-entrant machine's sequence the same
// way Solve does (every duplex job's first pass, then the last duplex
// job's remaining passes).
func CreateInitialSequence(inst *problem.Instance, reentrant problem.MachineId) (partial.Sequence, error) {
	return createInitialSequence(inst, reentrant)
}

// CreateOptions builds every potentially feasible insertion of eligibleOp
// into sol's committed sequence.
func CreateOptions(inst *problem.Instance, sol *partial.Solution, g *cg.Graph, eligibleOp problem.Operation, reentrant problem.MachineId) ([]partial.SchedulingOption, error) {
	_, options, err := createOptions(inst, sol, g, eligibleOp, reentrant)
	return options, err
}

// EvaluateOptions tries every option, keeping those whose interleaving
// edges stay acyclic, mirroring the candidate generation Solve ranks from.
func EvaluateOptions(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, options []partial.SchedulingOption, times paths.PathTimes, reentrant problem.MachineId) ([]Candidate, error) {
	cands, err := evaluateOptions(inst, g, sol, options, times, reentrant)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		out[i] = Candidate{Sol: c.sol, Opt: c.opt}
	}
	return out, nil
}

// ValidateInterleaving exposes the speculative add/recompute/rollback
// check used throughout BHCS, for exact solvers (bnb) that need to
// validate a complete candidate solution's edges over the whole graph.
func ValidateInterleaving(inst *problem.Instance, g *cg.Graph, edges []cg.Edge, times paths.PathTimes, sources, window []cg.VertexId) (paths.LongestPathResult, error) {
	return validateInterleaving(inst, g, edges, times, sources, window)
}
