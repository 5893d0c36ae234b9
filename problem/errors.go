// File: errors.go
// Role: Sentinel errors for the problem model, following the teacher's
// package-level errors.New + errors.Is convention (core/types.go,
// builder/errors.go).
package problem

import "errors"

var (
	// ErrUnknownOperation is returned when an operation has no machine
	// mapping, i.e. it was never declared part of the instance.
	ErrUnknownOperation = errors.New("problem: operation not mapped to a machine")

	// ErrUnknownJob is returned when a job id has no operation sequence.
	ErrUnknownJob = errors.New("problem: unknown job id")

	// ErrUnknownMachine is returned when a machine id has no operations
	// mapped onto it.
	ErrUnknownMachine = errors.New("problem: unknown machine id")

	// ErrNoGraph is returned by methods that need a constraint graph handle
	// (AddExtraSetupTime, AddExtraDueDate) before one has been attached.
	ErrNoGraph = errors.New("problem: no constraint graph attached to instance")

	// ErrEmptyJobs is returned by New when jobs is empty.
	ErrEmptyJobs = errors.New("problem: instance has no jobs")
)
