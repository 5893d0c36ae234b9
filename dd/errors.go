// File: errors.go
// Role: sentinel errors for the decision-diagram solver, matching the
// bnb/heuristics/maintenance sentinel-error idiom.
package dd

import "errors"

var (
	// ErrNoReEntrantMachine is returned when the instance has no
	// re-entrant machine to build a schedule-abstraction graph over.
	ErrNoReEntrantMachine = errors.New("dd: instance has no re-entrant machine")

	// ErrUnsupportedMultiplexity is returned when a machine is visited
	// more than twice per job.
	ErrUnsupportedMultiplexity = errors.New("dd: machine visited more than twice per job, not supported")

	// ErrInfeasibleNode is returned when a vertex's committed edges form
	// a positive cycle.
	ErrInfeasibleNode = errors.New("dd: vertex's committed sequence is infeasible")

	// ErrNoTerminal is returned when the instance's graph has no
	// terminal vertex, which the ALAPST backward pass roots at.
	ErrNoTerminal = errors.New("dd: graph has no terminal vertex")
)
