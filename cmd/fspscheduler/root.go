// File: root.go
// Role: the cobra command tree for §6.1's CLI surface: one root command
// that loads an instance, dispatches to solve/modular, and writes a
// report, plus the informational `--list-*` flags §6.1 names.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tue-ees/forpfsspsd-scheduler/internal/config"
	"github.com/tue-ees/forpfsspsd-scheduler/solve"
)

// version is overwritten at release-build time via -ldflags; "dev" covers
// every other build.
var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fspscheduler",
		Short:         "Solve FORPFSSPSD flow-shop scheduling instances",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	config.RegisterFlags(cmd)
	cmd.Flags().Bool("list-algorithms", false, "print the supported --algorithm values and exit")
	cmd.Flags().Bool("list-modular-algorithms", false, "print the supported --modular-algorithm values and exit")
	cmd.Flags().Bool("list-modular-multi-algorithm-behaviour", false, "print the supported --modular-multi-algorithm-behaviour values and exit")

	return cmd
}

// Execute runs the CLI and returns the process exit code: 0 for a
// completed run (including one where the solver found no feasible
// schedule — that is still a successful CLI invocation), 1 for a usage or
// I/O error.
func Execute() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fspscheduler:", err)
		return 1
	}
	return 0
}

func printLines(cmd *cobra.Command, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
}

func handleListFlags(cmd *cobra.Command) (handled bool, err error) {
	flags := cmd.Flags()

	if listAlgorithms, err := flags.GetBool("list-algorithms"); err != nil {
		return false, err
	} else if listAlgorithms {
		printLines(cmd, solve.AlgorithmNames())
		return true, nil
	}

	if listModular, err := flags.GetBool("list-modular-algorithms"); err != nil {
		return false, err
	} else if listModular {
		printLines(cmd, []string{"broadcast", "cocktail"})
		return true, nil
	}

	if listBehaviour, err := flags.GetBool("list-modular-multi-algorithm-behaviour"); err != nil {
		return false, err
	} else if listBehaviour {
		printLines(cmd, []string{"first", "divide", "interleave", "last", "random"})
		return true, nil
	}

	return false, nil
}
