// File: errors.go
// Role: sentinel errors for the maintenance package, grounded on the
// heuristics package's sentinel-error idiom (heuristics/errors.go).
package maintenance

import "errors"

var (
	// ErrNoReEntrantMachine is returned when the instance has no re-entrant
	// machine to insert maintenance operations on.
	ErrNoReEntrantMachine = errors.New("maintenance: instance has no re-entrant machine")

	// ErrNoRepairStrategy mirrors the original's FmsSchedulerException
	// thrown when repairScheduleOffline cannot find an earlier second
	// pass to reschedule: the positive cycle reaches all the way back to
	// the start of the machine sequence.
	ErrNoRepairStrategy = errors.New("maintenance: no repair strategy can be applied, positive cycle reaches sequence start")
)
