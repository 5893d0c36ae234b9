// File: options.go
// Role: functional options for the modular propagator, grounded on
// original_source's fms::cli::ModularArgs (include/fms/solvers/
// modular_args.hpp): store-bounds/store-sequence/no-self-bounds flags,
// an iteration cap, and (here) a pluggable per-module local solver so
// the propagator stays decoupled from any one solver package, mirroring
// how CocktailLineSolver::singleIteration calls FmsScheduler::runAlgorithm
// rather than a single hardcoded algorithm.
package modular

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// LocalSolver produces a single best solution for one module's problem
// instance. The default is heuristics.Solve (BHCS).
type LocalSolver func(ctx context.Context, inst *problem.Instance) (*partial.Solution, error)

func defaultLocalSolver(_ context.Context, inst *problem.Instance) (*partial.Solution, error) {
	return heuristics.Solve(inst)
}

// Option configures a Solve run.
type Option func(*config)

type config struct {
	localSolver LocalSolver

	maxIterations uint64

	storeBounds   bool
	storeSequence bool
	selfBounds    bool

	historyCapacity int
	logger          zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		localSolver:     defaultLocalSolver,
		maxIterations:   ^uint64(0),
		selfBounds:      true,
		historyCapacity: 0,
		logger:          zerolog.Nop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithLocalSolver overrides the per-module solver (default: heuristics.Solve).
func WithLocalSolver(s LocalSolver) Option {
	return func(c *config) { c.localSolver = s }
}

// WithMaxIterations bounds the number of forward/backward sweeps.
func WithMaxIterations(n uint64) Option {
	return func(c *config) {
		if n == 0 {
			panic("modular: WithMaxIterations requires a positive iteration count")
		}
		c.maxIterations = n
	}
}

// WithStoreBounds enables recording every round's bounds into the
// returned History.
func WithStoreBounds(store bool) Option {
	return func(c *config) { c.storeBounds = store }
}

// WithStoreSequence enables recording every round's chosen solutions
// into the returned History.
func WithStoreSequence(store bool) Option {
	return func(c *config) { c.storeSequence = store }
}

// WithSelfBounds controls whether a module's own propagated bounds are
// also recorded on that module (kOptNoSelfBounds's inverse).
func WithSelfBounds(self bool) Option {
	return func(c *config) { c.selfBounds = self }
}

// WithHistoryCapacity bounds how many rounds of History are retained (0
// means unbounded).
func WithHistoryCapacity(n int) Option {
	return func(c *config) { c.historyCapacity = n }
}

// WithLogger sets the structured logger used for per-round trace output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}
