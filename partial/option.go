// File: option.go
// Role: SchedulingOption, grounded on
// original_source's fms::solvers::SchedulingOption: describes inserting an
// operation between two already-chosen neighbors at a given position, or
// (is_maint) inserting a maintenance operation that shifts the
// first-feasible-edge cursor by one instead of moving it past the
// insertion point.
package partial

import "github.com/tue-ees/forpfsspsd-scheduler/problem"

// SchedulingOption describes a candidate insertion of CurOp between PrevOp
// and NextOp at Position within a machine's chosen sequence.
type SchedulingOption struct {
	ID      uint64
	Weight  float64
	PrevOp  problem.Operation
	CurOp   problem.Operation
	NextOp  problem.Operation
	Position int
	IsMaint bool
}
