// Package logging builds the process-wide structured logger.
//
// The teacher logs with bare log.Printf throughout internal/api and
// cmd/server. This repo instead follows the approach
// joeycumines-go-utilpkg's logiface-zerolog package takes — zerolog as
// the concrete backend — but wires zerolog directly (no facade
// indirection layer), since this repo has exactly one logging backend
// rather than several pluggable ones.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger. When pretty is true, logs are rendered
// as human-readable console output (local development); otherwise
// plain JSON lines, suitable for log aggregation.
func New(level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writer = os.Stderr
	logger := zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}).
			Level(lvl).With().Timestamp().Logger()
	}
	return logger
}
