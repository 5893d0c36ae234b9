// File: pipeline.go
// Role: the load -> solve -> report pipeline every §6.1 CLI invocation
// runs, grounded on original_source's fms::cli::run dispatch
// (include/fms/cli/command_line.hpp) and on this module's own
// internal/instance, solve, modular, internal/report,
// internal/sequencefile and internal/dotexport packages, which this file
// is the first thing to wire together end to end.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/dd"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/config"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/dotexport"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/instance"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/obslog"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/report"
	"github.com/tue-ees/forpfsspsd-scheduler/internal/sequencefile"
	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

func runRoot(cmd *cobra.Command, _ []string) error {
	if handled, err := handleListFlags(cmd); err != nil || handled {
		return err
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	if cfg.InputFile == "" || cfg.OutputFile == "" {
		return fmt.Errorf("fspscheduler: --input and --output are required")
	}

	logger := obslog.New(cfg.Verbose, cmd.ErrOrStderr())

	shopType, err := instance.ParseShopType(cfg.ShopType)
	if err != nil {
		return err
	}

	algorithms := make([]solve.AlgorithmType, len(cfg.Algorithms))
	for i, name := range cfg.Algorithms {
		algo, err := solve.ParseAlgorithmType(name)
		if err != nil {
			return err
		}
		algorithms[i] = algo
	}
	if len(algorithms) == 0 {
		algorithms = []solve.AlgorithmType{solve.BHCS}
	}

	explorationType, err := parseExplorationType(cfg.ExplorationType)
	if err != nil {
		return err
	}

	var maintPolicy *problem.MaintenancePolicy
	if cfg.MaintenanceFile != "" {
		p, err := instance.LoadMaintenancePolicy(cfg.MaintenanceFile)
		if err != nil {
			return err
		}
		maintPolicy = &p
	}

	kind, err := instance.DetectKind(cfg.InputFile)
	if err != nil {
		return err
	}

	start := time.Now()
	var rep report.Report
	switch kind {
	case instance.KindModular:
		rep, err = runModular(cfg, logger, shopType, algorithms, explorationType, maintPolicy, start)
	default:
		rep, err = runShop(cfg, logger, shopType, algorithms[0], explorationType, maintPolicy, start)
	}
	if err != nil {
		return err
	}

	return writeReport(cfg.OutputFile, cfg.OutputFormat, rep)
}

// runShop handles a single-shop <SPInstance> run: only algorithms[0] is
// honored (see multialgorithm.go's header comment on why `--algorithm`'s
// repeatability is scoped to modular runs).
func runShop(cfg *config.Config, logger zerolog.Logger, shopType problem.ShopType, algo solve.AlgorithmType, explorationType dd.ExplorationType, maintPolicy *problem.MaintenancePolicy, start time.Time) (report.Report, error) {
	inst, warnings, err := instance.LoadShop(cfg.InputFile, shopType)
	if err != nil {
		return report.Report{}, err
	}
	logWarnings(logger, warnings)
	if maintPolicy != nil {
		inst.SetMaintenancePolicy(*maintPolicy)
	}

	opts := solveOptions(cfg, explorationType, logger, maintPolicy != nil)
	if algo == solve.Sequence && cfg.SequenceFile != "" {
		seed, err := sequencefile.Load(cfg.SequenceFile)
		if err != nil {
			return report.Report{}, err
		}
		opts = append(opts, solve.WithSequenceSeed(seed))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeOutMS)*time.Millisecond)
	defer cancel()

	result, solveErr := solve.Solve(ctx, inst, algo, opts...)
	if solveErr != nil && errors.Is(solveErr, solve.ErrNoSolution) {
		dumpInfeasibility(logger, inst.Graph())
	}

	meta := report.RunMeta{
		Productivity: cfg.Productivity,
		Flexibility:  cfg.Flexibility,
		TimeOutValue: cfg.TimeOutMS,
		Jobs:         inst.NumberOfJobs(),
		Machines:     inst.NumberOfMachines(),
		TotalTime:    time.Since(start).Seconds(),
	}
	rep, err := report.FromResult(result, inst, meta, solveErr)
	if err != nil {
		return report.Report{}, err
	}

	if cfg.SequenceFile != "" && solveErr == nil && result.Solution != nil {
		if err := sequencefile.Save(cfg.SequenceFile, result.Solution.ChosenSequencesPerMachine()); err != nil {
			logger.Warn().Err(err).Msg("fspscheduler: could not persist sequence file")
		}
	}
	return rep, nil
}

// runModular handles a <modular> production-line run, dispatching to
// modular.SolveBroadcast or modular.SolveCocktail per
// `--modular-algorithm` and wiring `--algorithm`/
// `--modular-multi-algorithm-behaviour` through buildLocalSolver.
func runModular(cfg *config.Config, logger zerolog.Logger, shopType problem.ShopType, algorithms []solve.AlgorithmType, explorationType dd.ExplorationType, maintPolicy *problem.MaintenancePolicy, start time.Time) (report.Report, error) {
	pl, warnings, err := instance.LoadModular(cfg.InputFile, shopType)
	if err != nil {
		return report.Report{}, err
	}
	logWarnings(logger, warnings)
	if maintPolicy != nil {
		for _, m := range pl.Modules() {
			m.Instance.SetMaintenancePolicy(*maintPolicy)
		}
	}

	var seeds map[modular.ModuleId]partial.MachinesSequences
	if cfg.SequenceFile != "" {
		loaded, err := sequencefile.LoadModular(cfg.SequenceFile)
		if err != nil {
			return report.Report{}, err
		}
		seeds = make(map[modular.ModuleId]partial.MachinesSequences, len(loaded))
		for id, seq := range loaded {
			seeds[id] = seq
		}
	}

	opts := solveOptions(cfg, explorationType, logger, maintPolicy != nil)
	localSolver := buildLocalSolver(pl, algorithms, cfg.ModularMultiAlgorithmBehaviour, seeds, opts)

	modOpts := []modular.Option{
		modular.WithLocalSolver(localSolver),
		modular.WithMaxIterations(uint64(cfg.ModularMaxIterations)),
		modular.WithStoreBounds(cfg.ModularStoreBounds),
		modular.WithStoreSequence(cfg.ModularStoreSequence),
		modular.WithSelfBounds(!cfg.ModularNoSelfBounds),
		modular.WithLogger(logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ModularTimeOutMS)*time.Millisecond)
	defer cancel()

	var result modular.Result
	var solveErr error
	if cfg.ModularAlgorithm == "cocktail" {
		result, solveErr = modular.SolveCocktail(ctx, pl, modOpts...)
	} else {
		result, solveErr = modular.SolveBroadcast(ctx, pl, modOpts...)
	}

	meta := report.RunMeta{
		Productivity: cfg.Productivity,
		Flexibility:  cfg.Flexibility,
		TimeOutValue: cfg.ModularTimeOutMS,
		Jobs:         modularJobCount(pl),
		Machines:     modularMachineCount(pl),
		TotalTime:    time.Since(start).Seconds(),
	}
	rep, err := report.FromModularResult(pl, result, meta, solveErr)
	if err != nil {
		return report.Report{}, err
	}

	if cfg.SequenceFile != "" && solveErr == nil && result.Converged {
		out := make(map[modular.ModuleId]partial.MachinesSequences, len(result.Solution.Modules))
		for id, sol := range result.Solution.Modules {
			out[id] = sol.ChosenSequencesPerMachine()
		}
		if err := sequencefile.SaveModular(cfg.SequenceFile, out); err != nil {
			logger.Warn().Err(err).Msg("fspscheduler: could not persist modular sequence file")
		}
	}
	return rep, nil
}

func modularJobCount(pl *modular.ProductionLine) int {
	modules := pl.Modules()
	if len(modules) == 0 {
		return 0
	}
	return modules[0].Instance.NumberOfJobs()
}

func modularMachineCount(pl *modular.ProductionLine) int {
	total := 0
	for _, m := range pl.Modules() {
		total += m.Instance.NumberOfMachines()
	}
	return total
}

func logWarnings(logger zerolog.Logger, warnings []string) {
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
}

// dumpInfeasibility honors §7's "A DOT dump of the offending graph is
// emitted in debug verbosity" for a scheduler-error ("no feasible
// solution") outcome.
func dumpInfeasibility(logger zerolog.Logger, g *cg.Graph) {
	if g == nil {
		return
	}
	cycle := paths.ExtractPositiveCycle(g)
	if len(cycle) == 0 {
		return
	}
	var buf bytes.Buffer
	if err := dotexport.Write(&buf, g, cycle); err != nil {
		return
	}
	logger.Debug().Str("dot", buf.String()).Msg("fspscheduler: infeasible constraint graph")
}

func writeReport(path, format string, rep report.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fspscheduler: create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fspscheduler: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "cbor":
		return report.WriteCBOR(f, rep)
	default:
		return report.WriteJSON(f, rep)
	}
}
