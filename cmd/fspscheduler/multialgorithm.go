// File: multialgorithm.go
// Role: turns the repeatable `--algorithm` list plus
// `--modular-multi-algorithm-behaviour` into one modular.LocalSolver per
// run. Grounded on modular/resumable.go's own "find this instance's
// module by pointer identity" idiom (SolveCocktailResumable's wrapped
// closure) and on original_source's command_line.hpp, whose
// MultiAlgorithmBehaviour field sits next to a `std::vector<AlgorithmType>
// algorithms` used only for modular runs (the single-shop `algorithm`
// field is a lone AlgorithmType) — so behaviour selection is scoped to
// modular.SolveBroadcast/SolveCocktail only; a single-shop run always
// takes algorithms[0] and ignores the rest (handled in pipeline.go).
package main

import (
	"context"
	"math/rand"

	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

// buildLocalSolver returns a modular.LocalSolver that picks which
// algorithms[i] to run for a given module/round according to behaviour,
// and seeds the `sequence` algorithm from seeds[moduleID] when selected
// (`ddseed` runs the plain DD solver and receives no seed).
func buildLocalSolver(pl *modular.ProductionLine, algorithms []solve.AlgorithmType, behaviour string, seeds map[modular.ModuleId]partial.MachinesSequences, opts []solve.Option) modular.LocalSolver {
	modules := pl.Modules()
	indexOf := func(inst *problem.Instance) (int, modular.ModuleId) {
		for i, m := range modules {
			if m.Instance == inst {
				return i, m.ID
			}
		}
		return -1, 0
	}

	var calls uint64
	return func(ctx context.Context, inst *problem.Instance) (*partial.Solution, error) {
		moduleIdx, moduleID := indexOf(inst)
		round := calls / uint64(len(modules))
		calls++

		algo := pickAlgorithm(algorithms, behaviour, moduleIdx, round)

		runOpts := opts
		if algo == solve.Sequence {
			if seq, ok := seeds[moduleID]; ok {
				runOpts = append(append([]solve.Option{}, opts...), solve.WithSequenceSeed(seq))
			}
		}

		result, err := solve.Solve(ctx, inst, algo, runOpts...)
		if err != nil {
			return nil, err
		}
		return result.Solution, nil
	}
}

// pickAlgorithm selects which of algorithms runs for the module at
// moduleIdx in round, per `--modular-multi-algorithm-behaviour`. A single
// configured algorithm makes the behaviour irrelevant.
func pickAlgorithm(algorithms []solve.AlgorithmType, behaviour string, moduleIdx int, round uint64) solve.AlgorithmType {
	if len(algorithms) == 1 {
		return algorithms[0]
	}
	switch behaviour {
	case "divide":
		return algorithms[moduleIdx%len(algorithms)]
	case "interleave":
		return algorithms[int(round)%len(algorithms)]
	case "last":
		return algorithms[len(algorithms)-1]
	case "random":
		return algorithms[rand.Intn(len(algorithms))]
	default: // "first"
		return algorithms[0]
	}
}
