// SPDX-License-Identifier: MIT
// Package logging builds the structured logger used by the fio command line.
//
// Purpose:
//   - One constructor turning (level, format) strings from configuration into
//     a *slog.Logger writing JSON or logfmt-style text records.
//   - A run-scoped child logger so every record of one analysis carries the
//     same run_id.
//
// The analysis packages never log on their own: they receive this logger
// through ioa.WithLogger and parallel.SetLogger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Log levels accepted by New (case-insensitive).
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Output formats accepted by New (case-insensitive).
const (
	FormatJSON = "json"
	FormatText = "text"
)

// KeyRunID is the attribute key attached by WithRun.
const KeyRunID = "run_id"

// New returns a logger writing to w at the given level.
// Unknown levels fall back to INFO, unknown formats to JSON.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, FormatText) {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level name to slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn, "WARNING":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRun returns a child of l that tags every record with run_id.
func WithRun(l *slog.Logger, runID string) *slog.Logger {
	return l.With(slog.String(KeyRunID, runID))
}
