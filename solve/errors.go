// File: errors.go
// Role: sentinel errors for the top-level solver dispatcher, matching the
// bnb/dd/heuristics/maintenance/modular sentinel-error idiom.
package solve

import "errors"

var (
	// ErrUnknownAlgorithm is returned by ParseAlgorithmType and Solve for
	// a name/value this package does not implement.
	ErrUnknownAlgorithm = errors.New("solve: unknown algorithm")

	// ErrNoSolution is returned when a solver completed without finding
	// any feasible schedule (spec.md §7's "scheduler" error family).
	ErrNoSolution = errors.New("solve: no feasible solution found")

	// ErrTimeOut is returned when ctx was already done before (or became
	// done during) dispatch; the caller's fallback is the partially
	// computed Result, if any, with TimedOut set.
	ErrTimeOut = errors.New("solve: time out")
)
