// File: options.go
// Role: functional options for the DD solver, grounded on
// original_source's cli::DDExplorationType (the exploration strategy a
// DDSolverData carries) and on the bnb/heuristics/maintenance
// functional-options idiom.
package dd

import "github.com/rs/zerolog"

// ExplorationType selects the order in which open vertices are popped from
// the search queue, mirroring cli::DDExplorationType.
type ExplorationType int

const (
	// Breadth pops the oldest-pushed vertex first (FIFO), exploring the
	// graph level by level.
	Breadth ExplorationType = iota
	// Depth pops the most-recently-pushed vertex first (LIFO), diving to
	// a terminal as fast as possible to seed a tight incumbent early.
	Depth
	// Best always pops the open vertex with the smallest lower bound.
	Best
	// StaticPriority pops by a fixed blend of lower bound and depth,
	// mirroring branch_bound.cpp's ranked() scoring.
	StaticPriority
	// Adaptive alternates between Depth and Best every adaptivePeriod
	// iterations, diving for an incumbent and then tightening it.
	Adaptive
)

const adaptivePeriod = 32

// Option configures a Solve run.
type Option func(*config)

type config struct {
	explorationType ExplorationType
	maxWidth        int
	maxIterations   int
	logger          zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		explorationType: Best,
		maxWidth:        0,
		maxIterations:   1_000_000,
		logger:          zerolog.Nop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithExplorationType sets the vertex pop order.
func WithExplorationType(t ExplorationType) Option {
	return func(c *config) { c.explorationType = t }
}

// WithMaxWidth bounds the number of active (non-dominated) vertices kept
// per depth level, a beam-search-style cap against the schedule-
// abstraction graph's state explosion. Zero (the default) means
// unbounded.
func WithMaxWidth(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("dd: WithMaxWidth requires a non-negative width")
		}
		c.maxWidth = n
	}
}

// WithMaxIterations bounds the search's vertex-expansion count.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("dd: WithMaxIterations requires a positive iteration count")
		}
		c.maxIterations = n
	}
}

// WithLogger sets the structured logger used for per-iteration trace
// output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}
