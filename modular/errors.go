// File: errors.go
// Role: sentinel errors for the modular propagator, matching the
// bnb/dd/heuristics/maintenance sentinel-error idiom.
package modular

import "errors"

var (
	// ErrNoModules is returned when a ProductionLine has no modules.
	ErrNoModules = errors.New("modular: production line has no modules")

	// ErrUnknownModule is returned when a ModuleId does not belong to
	// the production line.
	ErrUnknownModule = errors.New("modular: unknown module id")

	// ErrNoConvergence is returned when the iteration/time budget is
	// exhausted before the bound sweeps converge, mirroring
	// BroadcastLineSolver::ErrorStrings::kNoConvergence.
	ErrNoConvergence = errors.New("modular: no convergence")

	// ErrLocalScheduler is returned when a module's local solver fails,
	// mirroring ErrorStrings::kLocalScheduler.
	ErrLocalScheduler = errors.New("modular: local scheduler failed")

	// ErrTimeOut is returned when the caller's context expires before
	// convergence, mirroring ErrorStrings::kTimeOut.
	ErrTimeOut = errors.New("modular: time out")
)
