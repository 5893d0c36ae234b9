// File: maintenance_policy.go
// Role: Maintenance policy table (§4.9), grounded on
// original_source's fms::problem::MaintenancePolicy: per-type duration and
// (min, max) idle thresholds, each with a default fallback for types that
// were never configured explicitly.
package problem

// MaintenancePolicy describes how many maintenance types exist, how long
// each one takes, and the idle-time window in which each must be
// performed.
type MaintenancePolicy struct {
	numberOfTypes uint
	minimumIdle   Delay

	duration        DefaultMap[MaintTypeId, Delay]
	minThreshold    DefaultMap[MaintTypeId, Delay]
	maxThreshold    DefaultMap[MaintTypeId, Delay]
}

// NewMaintenancePolicy builds a policy with the given number of maintenance
// types, a minimum idle time below which no maintenance is ever inserted,
// and default duration/threshold fallbacks used for any type not given an
// explicit entry via SetDuration/SetThresholds.
func NewMaintenancePolicy(numberOfTypes uint, minimumIdle, defaultDuration, defaultMinThreshold, defaultMaxThreshold Delay) MaintenancePolicy {
	return MaintenancePolicy{
		numberOfTypes: numberOfTypes,
		minimumIdle:   minimumIdle,
		duration:      NewDefaultMap[MaintTypeId, Delay](defaultDuration),
		minThreshold:  NewDefaultMap[MaintTypeId, Delay](defaultMinThreshold),
		maxThreshold:  NewDefaultMap[MaintTypeId, Delay](defaultMaxThreshold),
	}
}

// NumberOfTypes returns the number of distinct maintenance types.
func (p MaintenancePolicy) NumberOfTypes() uint { return p.numberOfTypes }

// MinimumIdle returns the minimum idle duration below which no maintenance
// is ever scheduled.
func (p MaintenancePolicy) MinimumIdle() Delay { return p.minimumIdle }

// SetDuration records an explicit duration for a maintenance type.
func (p *MaintenancePolicy) SetDuration(t MaintTypeId, d Delay) { p.duration.Set(t, d) }

// SetThresholds records an explicit (min, max) idle window for a
// maintenance type.
func (p *MaintenancePolicy) SetThresholds(t MaintTypeId, min, max Delay) {
	p.minThreshold.Set(t, min)
	p.maxThreshold.Set(t, max)
}

// Duration returns how long maintenance of type t takes.
func (p MaintenancePolicy) Duration(t MaintTypeId) Delay { return p.duration.Get(t) }

// DurationForOp returns the duration of the maintenance op represents; op
// must be a maintenance operation (cg.Operation.IsMaintenance()).
func (p MaintenancePolicy) DurationForOp(op Operation) Delay {
	return p.Duration(*op.Maintenance)
}

// Thresholds returns the (min, max) idle window within which maintenance of
// type t must be performed.
func (p MaintenancePolicy) Thresholds(t MaintTypeId) (min, max Delay) {
	return p.minThreshold.Get(t), p.maxThreshold.Get(t)
}
