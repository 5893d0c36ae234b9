// File: options.go
// Role: Functional options for the constraint-graph builder, following the
// teacher's builder/options.go contract: options mutate a private config,
// option constructors validate and panic on meaningless input, algorithms
// themselves never panic.
package cgbuilder

import (
	"github.com/rs/zerolog"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Option customizes graph construction by mutating a buildConfig before
// building begins.
type Option func(*buildConfig)

// WithJobOrder overrides the job visitation order used by the fixed-order
// builder. Defaults to the instance's output order (problem.Instance.JobsOutput).
// Panics on an empty order to surface programmer error early.
func WithJobOrder(order []problem.JobId) Option {
	if len(order) == 0 {
		panic("cgbuilder: WithJobOrder(empty)")
	}
	return func(c *buildConfig) { c.jobOrder = order }
}

// WithLogger attaches a logger used for per-edge trace output, mirroring
// the original builder's LOG_D calls. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *buildConfig) { c.logger = l }
}

type buildConfig struct {
	jobOrder []problem.JobId
	logger   zerolog.Logger
}

func newBuildConfig(inst *problem.Instance, opts ...Option) buildConfig {
	cfg := buildConfig{
		jobOrder: inst.JobsOutput(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
