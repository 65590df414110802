// Package logging builds the zerolog loggers used across spotilyfi.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level. Known levels are
// debug, info, warn and error. An empty level or "disabled" yields a logger
// that writes nothing; anything else falls back to info.
//
// Loggers writing to stderr or stdout use the human readable console format.
func New(level string, w io.Writer) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "", "disabled":
		return zerolog.Nop()
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	if w == nil {
		w = os.Stderr
	}
	if w == os.Stderr || w == os.Stdout {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
