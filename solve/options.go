// File: options.go
// Role: functional options for the top-level dispatcher, bundling every
// sub-package's own options behind one Config so a CLI layer only has to
// thread one set of flags down (§6.1's ranking weights, iteration caps,
// exploration type). Grounded on the same idiom as heuristics/options.go,
// bnb/options.go and dd/options.go.
package solve

import (
	"github.com/rs/zerolog"

	"github.com/tue-ees/forpfsspsd-scheduler/bnb"
	"github.com/tue-ees/forpfsspsd-scheduler/dd"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
)

// Option configures a Solve run.
type Option func(*config)

type config struct {
	flexibilityWeight  float64
	productivityWeight float64
	tieWeight          float64
	maxIterations      int
	maxPartialSolutions int
	explorationType    dd.ExplorationType
	maxWidth           int
	maintenance        heuristics.MaintenanceTrigger
	sequenceSeed       partial.MachinesSequences
	logger             zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		flexibilityWeight:  0.25,
		productivityWeight: 0.70,
		tieWeight:          0.05,
		maxIterations:      int(^uint(0) >> 1),
		maxPartialSolutions: 5,
		explorationType:    dd.StaticPriority,
		logger:             zerolog.Nop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithRankingWeights sets BHCS/MDBHCS's productivity/flexibility/tie
// weights (§6.1's `--productivity`/`--flexibility`/`--tie`, default
// 0.70/0.25/0.05).
func WithRankingWeights(productivity, flexibility, tie float64) Option {
	return func(c *config) {
		c.productivityWeight = productivity
		c.flexibilityWeight = flexibility
		c.tieWeight = tie
	}
}

// WithMaxIterations bounds BHCS/MNEH/B&B/DD's iteration count
// (§6.1's `--max-iterations`).
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("solve: WithMaxIterations requires a positive iteration count")
		}
		c.maxIterations = n
	}
}

// WithMaxPartial bounds MDBHCS's Pareto frontier size (§6.1's
// `--max-partial`, default 5).
func WithMaxPartial(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("solve: WithMaxPartial requires a positive cap")
		}
		c.maxPartialSolutions = n
	}
}

// WithExplorationType sets DD's vertex pop order (§6.1's
// `--exploration-type`).
func WithExplorationType(t dd.ExplorationType) Option {
	return func(c *config) { c.explorationType = t }
}

// WithMaxWidth bounds DD's per-depth beam width.
func WithMaxWidth(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("solve: WithMaxWidth requires a non-negative width")
		}
		c.maxWidth = n
	}
}

// WithMaintenanceTrigger wires a maintenance.NewTrigger-built callback into
// BHCS/MNEH/ASAPBacktrack so maintenance is inserted as the schedule is
// built rather than only checked afterward.
func WithMaintenanceTrigger(fn heuristics.MaintenanceTrigger) Option {
	return func(c *config) { c.maintenance = fn }
}

// WithSequenceSeed supplies the machine sequences the Sequence algorithm
// rebuilds a schedule from (§6.4's sequence file).
func WithSequenceSeed(seq partial.MachinesSequences) Option {
	return func(c *config) { c.sequenceSeed = seq }
}

// WithLogger sets the structured logger threaded into every sub-solver.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func (c config) heuristicsOptions() []heuristics.Option {
	opts := []heuristics.Option{
		heuristics.WithRankingWeights(c.flexibilityWeight, c.productivityWeight, c.tieWeight),
		heuristics.WithMaxIterations(c.maxIterations),
		heuristics.WithLogger(c.logger),
	}
	if c.maintenance != nil {
		opts = append(opts, heuristics.WithMaintenanceTrigger(c.maintenance))
	}
	return opts
}

func (c config) paretoOptions() []heuristics.Option {
	opts := c.heuristicsOptions()
	return append(opts, heuristics.WithMaxPartialSolutions(c.maxPartialSolutions))
}

func (c config) ddOptions() []dd.Option {
	opts := []dd.Option{
		dd.WithExplorationType(c.explorationType),
		dd.WithMaxIterations(c.maxIterations),
		dd.WithLogger(c.logger),
	}
	if c.maxWidth > 0 {
		opts = append(opts, dd.WithMaxWidth(c.maxWidth))
	}
	return opts
}

func (c config) bnbOptions() []bnb.Option {
	return []bnb.Option{
		bnb.WithMaxIterations(c.maxIterations),
		bnb.WithLogger(c.logger),
	}
}
