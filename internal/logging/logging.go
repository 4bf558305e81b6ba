// Package logging builds the logger used for --debug output.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w.
// With debug set it logs everything; otherwise only warnings and errors.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops all records.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
