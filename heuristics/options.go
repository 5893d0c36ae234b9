// File: options.go
// Role: functional options for the ranking-based heuristics, grounded on
// the teacher's builder/options.go idiom and on cli::CLIArgs's
// flexibilityWeight/productivityWeight/tieWeight/maxIterations fields
// (original_source's include/fms/cli/command_line.hpp).
package heuristics

import (
	"github.com/rs/zerolog"

	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// MaintenanceTrigger inserts maintenance operations into a candidate
// solution, returning the (possibly unchanged) solution or an error. Wired by the maintenance package for the MI*/MINEH
// algorithm variants; left nil, heuristics never insert maintenance.
type MaintenanceTrigger func(inst *problem.Instance, reEntrant problem.MachineId, sol *partial.Solution) (*partial.Solution, error)

// Option configures a heuristic run.
type Option func(*config)

type config struct {
	flexibilityWeight  float64
	productivityWeight float64
	tieWeight          float64
	asapRanking        bool
	maxIterations      int
	maxPartialSolutions int
	maintenance        MaintenanceTrigger
	logger             zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		flexibilityWeight:  1,
		productivityWeight: 1,
		tieWeight:          1,
		maxIterations:      1000,
		maxPartialSolutions: 50,
		logger:             zerolog.Nop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithRankingWeights sets the three weights BHCS's balanced ranking
// combines: flexibility (minimize push of the current operation),
// productivity (minimize push of the next operation), and tie (minimize
// the number of operations in the re-entrant loop).
func WithRankingWeights(flexibility, productivity, tie float64) Option {
	return func(c *config) {
		c.flexibilityWeight = flexibility
		c.productivityWeight = productivity
		c.tieWeight = tie
	}
}

// WithASAPRanking selects the pure-ASAP ranking (earliest start of the
// current operation wins ties aside) instead of the balanced ranking.
func WithASAPRanking() Option {
	return func(c *config) { c.asapRanking = true }
}

// WithMaxIterations bounds MNEH's improvement loop.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("heuristics: WithMaxIterations requires a positive iteration count")
		}
		c.maxIterations = n
	}
}

// WithMaintenanceTrigger wires a maintenance-insertion hook into the
// heuristic, used by the MI*/MINEH algorithm variants.
func WithMaintenanceTrigger(fn MaintenanceTrigger) Option {
	return func(c *config) { c.maintenance = fn }
}

// WithLogger sets the structured logger used for per-step trace output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}
