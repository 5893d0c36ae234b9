// File: options.go
// Role: functional options for the branch-and-bound solver, grounded on
// the same idiom as heuristics/options.go.
package bnb

import "github.com/rs/zerolog"

// Option configures a Solve run.
type Option func(*config)

type config struct {
	maxIterations int
	logger        zerolog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		maxIterations: 1_000_000,
		logger:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithMaxIterations bounds the search's node-expansion count, a backstop
// against a pathological instance whose branch-and-bound never empties
// its stack within the wall-clock budget the caller's context applies.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("bnb: WithMaxIterations requires a positive iteration count")
		}
		c.maxIterations = n
	}
}

// WithLogger sets the structured logger used for per-iteration trace
// output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}
