// Package logging holds the shared application logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide logger. It discards everything until
// Initialize runs, so packages can log during early startup.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Initialize configures the logger. Debug mode (flag or POMODORO_DEBUG=1)
// lowers the level to debug; otherwise info and above are emitted.
func Initialize(debug bool) {
	if os.Getenv("POMODORO_DEBUG") == "1" {
		debug = true
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
