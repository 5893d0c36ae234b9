// File: errors.go
// Role: sentinel errors for the branch-and-bound solver, grounded on the
// heuristics package's sentinel-error idiom (heuristics/errors.go).
package bnb

import "errors"

var (
	// ErrNoReEntrantMachine is returned when the instance has no
	// re-entrant machine to branch over.
	ErrNoReEntrantMachine = errors.New("bnb: instance has no re-entrant machine")

	// ErrUnsupportedMultiplexity is returned when a machine is visited
	// more than twice per job; only single (simplex/duplex) re-entrancy
	// is implemented.
	ErrUnsupportedMultiplexity = errors.New("bnb: machine visited more than twice per job, not supported")

	// ErrInfeasibleNode is returned when a node's committed edges form a
	// positive cycle — the original throws FmsSchedulerException here,
	// since a properly constructed search should never reach it.
	ErrInfeasibleNode = errors.New("bnb: node's committed sequence is infeasible")

	// ErrLowerBoundDecreased guards the invariant that lower bounds are
	// monotone non-decreasing as the search goes deeper; a decrease
	// means the bound (or the search) has a bug, mirroring the
	// original's explicit sanity-check throw.
	ErrLowerBoundDecreased = errors.New("bnb: lower bound decreased, invariant violated")
)
