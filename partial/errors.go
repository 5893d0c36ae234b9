// File: errors.go
// Role: Sentinel errors for the partial-solution package.
package partial

import "errors"

var (
	// ErrUnknownMachineSequence is returned when a machine has no recorded
	// sequence yet.
	ErrUnknownMachineSequence = errors.New("partial: no sequence recorded for machine")

	// ErrNoReEntrantMachine is returned by operations that need the
	// instance's first re-entrant machine (GetInferredInputSequence and
	// friends) when the instance has none.
	ErrNoReEntrantMachine = errors.New("partial: instance has no re-entrant machine")

	// ErrNoGraph is returned by RealMakespan when the instance has no
	// constraint graph attached yet.
	ErrNoGraph = errors.New("partial: instance has no constraint graph attached")

	// ErrPositionOutOfRange is returned by Add/Remove when the scheduling
	// option's position does not fit the current machine sequence.
	ErrPositionOutOfRange = errors.New("partial: scheduling option position out of range")
)
