// File: transfer.go
// Role: the boundary between two adjacent modules (§4.10), grounded on
// original_source's fms::problem::TransferPoint/Boundary (include/fms/
// problem/production_line.hpp): per-job transfer setup time (added to
// both separations when crossing downstream) and an optional transfer due
// date (added to a maximum separation when crossing downstream,
// subtracted when translating back upstream), translating
// an IntervalSpec observed on one side into the corresponding IntervalSpec
// on the other.
package modular

import "github.com/tue-ees/forpfsspsd-scheduler/problem"

// TransferPoint carries the per-job setup time and optional due date
// incurred when a job crosses from the upstream module's output to the
// downstream module's input.
type TransferPoint struct {
	SetupTime map[problem.JobId]problem.Delay
	DueDate   map[problem.JobId]problem.Delay
}

// setupFor returns the transfer setup time for job, defaulting to 0.
func (t TransferPoint) setupFor(job problem.JobId) problem.Delay {
	if t.SetupTime == nil {
		return 0
	}
	return t.SetupTime[job]
}

// dueDateFor returns the transfer due date for job and whether one is
// set.
func (t TransferPoint) dueDateFor(job problem.JobId) (problem.Delay, bool) {
	if t.DueDate == nil {
		return 0, false
	}
	d, ok := t.DueDate[job]
	return d, ok
}

// Boundary connects an upstream module's output to a downstream module's
// input.
type Boundary struct {
	Upstream, Downstream ModuleId
	Transfer             TransferPoint
}

// translateToDestination translates an IntervalSpec observed at the
// upstream module's output boundary into the corresponding IntervalSpec
// at the downstream module's input boundary: the transfer setup time of
// the later job in each pair is added to the minimum separation (the
// later job cannot start at the new module before it has been
// transferred) and to the maximum separation, and, when a transfer due
// date is set for that job, it is also added to the maximum separation.
func (b Boundary) translateToDestination(spec IntervalSpec) IntervalSpec {
	out := make(IntervalSpec, len(spec))
	for pair, interval := range spec {
		translated := interval
		setup := b.Transfer.setupFor(pair.Second)
		if interval.MinSep != nil {
			v := *interval.MinSep + setup
			translated.MinSep = &v
		}
		if interval.MaxSep != nil {
			v := *interval.MaxSep + setup
			if due, ok := b.Transfer.dueDateFor(pair.Second); ok {
				v += due
			}
			translated.MaxSep = &v
		}
		out[pair] = translated
	}
	return out
}

// translateToSource translates an IntervalSpec observed at the
// downstream module's input boundary back into the IntervalSpec expected
// at the upstream module's output boundary: the inverse of
// translateToDestination, subtracting rather than adding the transfer
// setup time (and due date, when present), floored at zero since a
// separation can never translate to a negative requirement.
func (b Boundary) translateToSource(spec IntervalSpec) IntervalSpec {
	out := make(IntervalSpec, len(spec))
	for pair, interval := range spec {
		translated := interval
		setup := b.Transfer.setupFor(pair.Second)
		if interval.MinSep != nil {
			v := *interval.MinSep - setup
			if v < 0 {
				v = 0
			}
			translated.MinSep = &v
		}
		if interval.MaxSep != nil {
			v := *interval.MaxSep - setup
			if due, ok := b.Transfer.dueDateFor(pair.Second); ok {
				v -= due
			}
			if v < 0 {
				v = 0
			}
			translated.MaxSep = &v
		}
		out[pair] = translated
	}
	return out
}
