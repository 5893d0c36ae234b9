// File: errors.go
// Role: sentinel errors for the heuristics package.
package heuristics

import "errors"

var (
	// ErrNoReEntrantMachine is returned by heuristics that require a
	// re-entrant machine to anchor their insertion search.
	ErrNoReEntrantMachine = errors.New("heuristics: instance has no re-entrant machine")

	// ErrUnsupportedMultiplexity is returned when a machine is visited more
	// than twice per job; only single (simplex/duplex) re-entrancy is
	// implemented.
	ErrUnsupportedMultiplexity = errors.New("heuristics: machine visited more than twice per job, not supported")

	// ErrOnlySimplexJobs is returned by createInitialSequence when no job
	// in the instance is duplex on the chosen re-entrant machine, so there
	// is nothing to interleave.
	ErrOnlySimplexJobs = errors.New("heuristics: nothing to schedule, only simplex sheets")

	// ErrNoFeasibleOption is returned when an eligible operation has no
	// feasible insertion point in the current partial solution.
	ErrNoFeasibleOption = errors.New("heuristics: no feasible insertion option found")

	// ErrInfeasibleSeed is returned when a seed sequence handed to an
	// improvement heuristic is already infeasible.
	ErrInfeasibleSeed = errors.New("heuristics: seed sequence is infeasible")
)
