// File: obslog.go
// Role: builds the one process-wide zerolog.Logger cmd/fspscheduler
// threads down through solve.Options (SPEC_FULL.md's AMBIENT STACK
// "Logging" section), grounded on github.com/rs/zerolog directly — the
// same library joeycumines-go-utilpkg/logiface-zerolog wraps — since every
// library package in this module already accepts a bare zerolog.Logger
// (heuristics.WithLogger, bnb.WithLogger, dd.WithLogger, modular.WithLogger)
// rather than a logging-facade abstraction.
package obslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-writing zerolog.Logger whose level is raised by each
// repeated `--verbose` flag: 0 -> WarnLevel, 1 -> InfoLevel, 2 -> DebugLevel,
// 3+ -> TraceLevel, matching §6.1's "--verbose (repeatable; increases log
// level)".
func New(verbosity int, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := levelFor(verbosity)
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
