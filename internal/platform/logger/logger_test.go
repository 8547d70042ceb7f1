// Package logger_test contains tests for the logger package
package logger_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		got, ok := logger.ParseLevel(tc.input)
		assert.Equal(t, tc.want, got, "level for %q", tc.input)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.input)
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, slog.LevelWarn)

	log.Info("suppressed")
	log.Warn("kept", "task", "notice")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
	assert.Equal(t, "notice", entries[0]["task"])
}

func TestNewRedactsErrorAttributes(t *testing.T) {
	log, buf := logger.NewTestLogger(t)

	log.Error("provider call failed",
		"error", errors.New("401 Unauthorized: Incorrect API key provided: sk-proj-abcdefghijklmnopqrstuv"))

	out := buf.String()
	assert.NotContains(t, out, "sk-proj-abcdefghijklmnopqrstuv")
	assert.Contains(t, out, "[REDACTED_KEY]")
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "meetdocs.log")
	log, err := logger.Setup(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Debug("file sink works")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "file sink works"))
	assert.Same(t, log, slog.Default())
}

func TestSetupFallsBackToInfo(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	log, err := logger.Setup(config.LogConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, log.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, log.Enabled(t.Context(), slog.LevelDebug))
}

func TestSetupToConsoleWriter(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf strings.Builder
	log, err := logger.SetupTo(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "error", errors.New("token=abcdefgh12345678"))

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.NotContains(t, out, "abcdefgh12345678")
}
