// File: idle.go
// Role: per-sheet-size idle-time tracking and threshold checking, grounded
// on original_source's fetchIdle/checkInterval
// (src/solvers/maintenance_heuristic.cpp). The original keeps a vector of
// "time since last use" (TLU) indexed by sheet size across a scan of the
// machine sequence; a Go map keyed by sheet size plays the same role,
// since Instance.UniqueSheetSizes already hands back the sparse set of
// sizes actually in play instead of a dense 0..max vector.
package maintenance

import (
	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Mode selects which family of checkInterval rule an algorithm uses.
// FastPath additionally triggers when the idle time at any sheet size
// creeps within 90% of its maximum threshold (the MIBHCS/MINEH/MIASAP
// family); Strict only triggers on the threshold interval itself (the
// MISIM/MINEHSIM/MIASAPSIM family).
type Mode int

const (
	FastPath Mode = iota
	Strict
)

// maxIdleRatio is the original's hardcoded 0.9 early-trigger ratio.
const maxIdleRatio = 0.9

// tluTracker maintains the time-since-last-use value for every sheet size
// seen so far in a machine-sequence scan, plus a baseline slot (key 0)
// used whenever the current operation is itself a maintenance slot.
type tluTracker struct {
	tlu map[uint]problem.Delay
}

func newTLUTracker() *tluTracker {
	return &tluTracker{tlu: map[uint]problem.Delay{}}
}

func (t *tluTracker) reset() {
	for k := range t.tlu {
		t.tlu[k] = 0
	}
}

// update advances the tracker past the transition from prev to curr,
// grounded on fetchIdle's TLU bookkeeping: at the very start of a scan
// every size resets; immediately after a maintenance operation every
// known size is set uniformly to the elapsed time since the maintenance
// finished; otherwise every size no larger than prev's resets to zero and
// every larger size accrues the elapsed time.
func (t *tluTracker) update(inst *problem.Instance, isFirst bool, prev, curr problem.Operation, elapsed, maintDuration problem.Delay) {
	if isFirst {
		t.reset()
		return
	}
	if prev.IsMaintenance() {
		value := elapsed - maintDuration
		for size := range t.tlu {
			t.tlu[size] = value
		}
		return
	}
	prevSize := inst.SheetSize(prev)
	for size := range inst.UniqueSheetSizes(0) {
		if _, ok := t.tlu[size]; !ok {
			t.tlu[size] = 0
		}
		if size <= prevSize {
			t.tlu[size] = 0
		} else {
			t.tlu[size] += elapsed
		}
	}
}

// idleAt returns the idle time at curr's own sheet size (or the baseline
// slot if curr is a maintenance operation) and the maximum idle time
// across every sheet size that actually occurs in the instance.
func (t *tluTracker) idleAt(inst *problem.Instance, curr problem.Operation) (idle, maxIdle problem.Delay) {
	if curr.IsMaintenance() {
		idle = t.tlu[0]
	} else {
		idle = t.tlu[inst.SheetSize(curr)]
	}
	for size := range inst.UniqueSheetSizes(0) {
		if v := t.tlu[size]; v > maxIdle {
			maxIdle = v
		}
	}
	return idle, maxIdle
}

// fetchIdle computes the elapsed time between prev and curr from times,
// advances tracker past that transition, and returns the resulting
// (idle, maxIdle) pair. g and times must agree on vertex indexing.
func fetchIdle(inst *problem.Instance, g *cg.Graph, times paths.PathTimes, tracker *tluTracker, isFirst bool, prev, curr problem.Operation, maintDuration problem.Delay) (idle, maxIdle problem.Delay, err error) {
	var elapsed problem.Delay
	if !isFirst {
		prevV, err := g.GetVertex(prev)
		if err != nil {
			return 0, 0, err
		}
		currV, err := g.GetVertex(curr)
		if err != nil {
			return 0, 0, err
		}
		elapsed = times[currV] - times[prevV]
	}
	tracker.update(inst, isFirst, prev, curr, elapsed, maintDuration)
	idle, maxIdle = tracker.idleAt(inst, curr)
	return idle, maxIdle, nil
}

// checkInterval scans every maintenance type in policy, returning the
// first type whose window the given idle/maxIdle pair falls into, per
// mode's trigger rule. ok is false if no type triggers.
func checkInterval(policy problem.MaintenancePolicy, idle, maxIdle problem.Delay, mode Mode) (maintType cg.MaintTypeId, ok bool) {
	for i := uint(0); i < policy.NumberOfTypes(); i++ {
		t := cg.MaintTypeId(i)
		min, max := policy.Thresholds(t)
		if idle >= min && idle < max {
			return t, true
		}
		if mode == FastPath && max > 0 {
			ratio := float64(maxIdleRatio) * float64(max)
			if float64(maxIdle) >= ratio && maxIdle < max {
				return t, true
			}
		}
	}
	return 0, false
}
