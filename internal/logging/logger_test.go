// SPDX-License-Identifier: MIT
package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/katalvlaran/fio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, logging.ParseLevel(tc.in))
		})
	}
}

func TestNew_JSONWithRun(t *testing.T) {
	var buf bytes.Buffer
	l := logging.WithRun(logging.New(&buf, "debug", "json"), "run-1")
	l.Debug("started", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "started", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "run-1", rec[logging.KeyRunID])
	assert.EqualValues(t, 3, rec["n"])
}

func TestNew_TextAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "warn", "TEXT")
	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "msg=shown"), out)
	assert.Contains(t, out, "k=v")
}

func TestDiscard(t *testing.T) {
	l := logging.Discard()
	require.NotNil(t, l)
	l.Error("dropped")
}
