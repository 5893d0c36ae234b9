// File: errors.go
// Role: Sentinel errors for the constraint-graph builder, following the
// teacher's builder/errors.go convention (package-level errors.New,
// wrapped with fmt.Errorf("cgbuilder: ...: %w", ...) at call sites).
package cgbuilder

import "errors"

var (
	// ErrNilInstance is returned when Build is called with a nil instance.
	ErrNilInstance = errors.New("cgbuilder: nil problem instance")

	// ErrMissingOperation is returned when a job order or fixed-order
	// pinning step references an operation the instance never declared.
	ErrMissingOperation = errors.New("cgbuilder: referenced operation not found in instance")

	// ErrInfeasibleDueDate is returned when a sequence-independent due date
	// is declared from an operation to one that it does not follow in job or
	// operation order (src.Job <= dst.Job and src.Op <= dst.Op).
	ErrInfeasibleDueDate = errors.New("cgbuilder: infeasible sequence-independent due date")

	// ErrUnknownShopType is returned when an instance carries a shop type
	// Build does not know how to dispatch.
	ErrUnknownShopType = errors.New("cgbuilder: unknown shop type")
)
