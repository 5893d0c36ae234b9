// File: options.go
// Role: turns a loaded config.Config into the solve.Option slice every
// algorithm dispatch shares, plus the small CLI-only string parsers
// (`--exploration-type`) that don't warrant a home in the dd package
// itself since only this CLI surface ever needs them.
package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tue-ees/forpfsspsd-scheduler/dd"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/config"
	"github.com/tue-ees/forpfsspsd-scheduler/maintenance"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

func solveOptions(cfg *config.Config, explorationType dd.ExplorationType, logger zerolog.Logger, maintenanceEnabled bool) []solve.Option {
	opts := []solve.Option{
		solve.WithRankingWeights(cfg.Productivity, cfg.Flexibility, cfg.Tie),
		solve.WithMaxIterations(cfg.MaxIterations),
		solve.WithMaxPartial(cfg.MaxPartial),
		solve.WithExplorationType(explorationType),
		solve.WithLogger(logger),
	}
	if maintenanceEnabled {
		opts = append(opts, solve.WithMaintenanceTrigger(maintenance.NewTrigger(maintenance.FastPath)))
	}
	return opts
}

func parseExplorationType(name string) (dd.ExplorationType, error) {
	switch name {
	case "breadth":
		return dd.Breadth, nil
	case "depth":
		return dd.Depth, nil
	case "best":
		return dd.Best, nil
	case "static", "":
		return dd.StaticPriority, nil
	case "adaptive":
		return dd.Adaptive, nil
	default:
		return 0, fmt.Errorf("fspscheduler: unknown --exploration-type %q", name)
	}
}
