// File: types.go
// Role: the modular propagator's shared vocabulary (§4.10), grounded on
// original_source's fms::problem::Module/ProductionLine/IntervalSpec
// (include/fms/problem/module.hpp, production_line.hpp, bounds.hpp): a
// production line is a totally ordered sequence of modules, each owning
// its own problem instance; between adjacent modules a TransferPoint
// carries per-job transfer setup/due-date translation, and a ModuleBounds
// pair of IntervalSpecs carries the minimum/maximum separation between
// consecutive jobs observed or required at a module's input/output
// boundary.
package modular

import (
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// ModuleId identifies a module within a ProductionLine. Modules are
// numbered consecutively starting at 0, in line order.
type ModuleId int

// BoundsSide selects which boundary of a module a bound or interval
// query concerns.
type BoundsSide int

const (
	Input BoundsSide = iota
	Output
	Both
)

// JobPair keys an IntervalSpec entry: the separation constraint between
// two jobs crossing a module boundary in this order.
type JobPair struct {
	First, Second problem.JobId
}

// Interval is the known or required separation between a JobPair's two
// jobs at a module boundary. A nil bound means "unspecified", distinct
// from a zero separation.
type Interval struct {
	MinSep *problem.Delay
	MaxSep *problem.Delay
}

// IntervalSpec maps job pairs crossing a boundary to their separation
// interval.
type IntervalSpec map[JobPair]Interval

// ModuleBounds bundles the interval specs observed or imposed at a
// module's input and output boundary.
type ModuleBounds struct {
	In, Out IntervalSpec
}

// GlobalBounds records every module's bounds for one round, keyed by
// module id, mirroring GlobalIntervals.
type GlobalBounds map[ModuleId]ModuleBounds

// ModulesSolutions records every module's chosen local solution for one
// round, keyed by module id, mirroring FMS::ModulesSolutions.
type ModulesSolutions map[ModuleId]*partial.Solution
