// File: algorithm.go
// Role: the dynamic-dispatch "AlgorithmType" tagged variant spec.md §9
// calls for ("Dynamic dispatch on solver family" — a tagged variant with a
// match-driven dispatch), grounded on original_source's
// fms::cli::AlgorithmType enum (include/fms/cli/command_line.hpp) and the
// CLI surface §6.1's `--algorithm` values.
package solve

import "fmt"

// AlgorithmType selects which solver family Solve dispatches to.
type AlgorithmType int

const (
	// BHCS runs the ranked forward-insertion heuristic (§4.6).
	BHCS AlgorithmType = iota
	// MDBHCS runs BHCS's multi-dimensional Pareto-frontier variant
	// (§4.6's "MD-BHCS"), returning every non-dominated partial solution.
	MDBHCS
	// MNEH runs the NEH-style sequence-rebuild heuristic (§4.6,
	// supplemented from original_source's mneh_heuristic.hpp).
	MNEH
	// ASAPBacktrack runs the ASAP-with-backtracking rebuild heuristic.
	ASAPBacktrack
	// BranchAndBound runs the exact LIFO branch-and-bound search (§4.7).
	BranchAndBound
	// DD runs the decision-diagram / schedule-abstraction-graph solver
	// (§4.8). ParseAlgorithmType also maps the name "ddseed" to DD; that
	// name runs the same unseeded solver and plays back no sequence seed.
	DD
	// Sequence rebuilds a schedule directly from a caller-supplied
	// machine sequence (the `sequence-file` seed path, §6.4), recomputing
	// ASAPST rather than searching.
	Sequence
)

// String renders the algorithm's CLI name (the same spelling
// ParseAlgorithmType accepts).
func (a AlgorithmType) String() string {
	switch a {
	case BHCS:
		return "bhcs"
	case MDBHCS:
		return "mdbhcs"
	case MNEH:
		return "mneh"
	case ASAPBacktrack:
		return "asap"
	case BranchAndBound:
		return "bnb"
	case DD:
		return "dd"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// AlgorithmNames lists every algorithm this package implements, in the
// order `--list-algorithms` should print them.
func AlgorithmNames() []string {
	return []string{BHCS.String(), MDBHCS.String(), MNEH.String(), ASAPBacktrack.String(), BranchAndBound.String(), DD.String(), Sequence.String()}
}

// ParseAlgorithmType parses a CLI `--algorithm` value.
func ParseAlgorithmType(name string) (AlgorithmType, error) {
	switch name {
	case "bhcs", "":
		return BHCS, nil
	case "mdbhcs":
		return MDBHCS, nil
	case "mneh":
		return MNEH, nil
	case "asap":
		return ASAPBacktrack, nil
	case "bnb":
		return BranchAndBound, nil
	case "dd", "ddseed":
		return DD, nil
	case "sequence":
		return Sequence, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
