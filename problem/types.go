// File: types.go
// Role: Type aliases re-exporting the cg package's strongly-typed ids so the
// problem model speaks the same vocabulary as the constraint graph without
// a circular import (problem depends on cg, not vice versa).
package problem

import "github.com/tue-ees/forpfsspsd-scheduler/cg"

type (
	JobId        = cg.JobId
	OperationId  = cg.OperationId
	MachineId    = cg.MachineId
	ReEntrantId  = cg.ReEntrantId
	MaintTypeId  = cg.MaintTypeId
	Operation    = cg.Operation
	OperationKey = cg.OperationKey
	Delay        = cg.Delay
)

// ReEntrancies counts how many times a job visits a re-entrant machine.
// A value of 1 means the machine is not re-entrant for that job.
type ReEntrancies uint

// Plexity names the two re-entrancy counts the heuristics distinguish:
// a simplex job passes a re-entrant machine once, a duplex job twice.
const (
	Simplex ReEntrancies = 1
	Duplex  ReEntrancies = 2
)

// ShopType distinguishes the fixed-order permutation flow shop from the
// free-order job shop variant (§4.4's builder variant).
type ShopType int

const (
	ShopFixedOrder ShopType = iota
	ShopJobShop
)

func (s ShopType) String() string {
	if s == ShopJobShop {
		return "job-shop"
	}
	return "fixed-order-shop"
}
