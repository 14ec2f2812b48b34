// Package logging builds the console logger used by the command line tool.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level maps the -q flag and the -v count to a log level.
// Quiet wins over any verbosity.
func Level(verbosity int, quiet bool) zerolog.Level {
	if quiet {
		return zerolog.ErrorLevel
	}
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New returns a human-readable logger writing to w.
// Colors are disabled when NO_COLOR is set.
func New(w io.Writer, verbosity int, quiet bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	level := Level(verbosity, quiet)
	ctx := zerolog.New(console).Level(level).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
