// Package logger builds the structured JSON logger shared by all seeder
// components.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger tagged with the job name and a run identifier.
// Every run gets a fresh run_id so log lines from overlapping or repeated
// runs can be told apart.
func New(jobName, runID, level string) *slog.Logger {
	return NewWithWriter(jobName, runID, level, os.Stdout)
}

// NewWithWriter is New with an explicit output writer, for tests.
func NewWithWriter(jobName, runID, level string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})

	return slog.New(handler).With(
		slog.String("job", jobName),
		slog.String("run_id", runID),
	)
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
