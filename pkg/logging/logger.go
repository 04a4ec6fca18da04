// Package logging configures the process-wide structured logger.
// Every record is tagged with a run id so interleaved output from repeated
// invocations stays attributable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	// runID identifies the current execution
	runID     string
	runIDOnce sync.Once
)

// RunID returns the unique id for this execution, creating it on first use.
func RunID() string {
	runIDOnce.Do(func() {
		runID = uuid.NewString()[:8]
	})
	return runID
}

// Setup builds the process logger: text records on stderr, debug level when
// verbose, tagged with the run id. It also installs the logger as the slog
// default.
func Setup(verbose bool) *slog.Logger {
	return SetupWriter(os.Stderr, verbose)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("run", RunID())
	slog.SetDefault(logger)
	return logger
}
