package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. Use it in tests to
// keep command output clean.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
