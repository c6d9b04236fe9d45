package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// setupLogger configures the global zerolog logger to write human-readable
// lines to stderr at the given level, and returns it. Stdout stays reserved
// for replies.
func setupLogger(level zerolog.Level) zerolog.Logger {
	return setupLoggerTo(os.Stderr, level)
}

// setupLoggerTo is setupLogger with an explicit destination. Colors are
// only used when out is a terminal.
func setupLoggerTo(out io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()

	return log.Logger
}
