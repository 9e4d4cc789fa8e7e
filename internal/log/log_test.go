package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return NewWithHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "raw: %s", buf.String())
	return entry
}

func TestLogger_Module(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug).Module("dilithium").With("security_level", 3)

	l.Debug("key pair generated", "fingerprint", "00ff")

	entry := decode(t, &buf)
	require.Equal(t, "dilithium", entry["module"])
	require.Equal(t, "key pair generated", entry["msg"])
	require.Equal(t, "DEBUG", entry["level"])
	require.EqualValues(t, 3, entry["security_level"])
	require.Equal(t, "00ff", entry["fingerprint"])
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelError, func(l *Logger) { l.Warn("nope") }, false},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
	}
	for i, tt := range tests {
		var buf bytes.Buffer
		tt.logFn(newTestLogger(&buf, tt.level))
		require.Equal(t, tt.expect, buf.Len() > 0, "case %d", i)
	}
}

func TestLogger_Enabled(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelWarn)
	require.False(t, l.Enabled(slog.LevelDebug))
	require.True(t, l.Enabled(slog.LevelError))
}

func TestDefault(t *testing.T) {
	l := Default()
	require.Same(t, l, Default())
	require.True(t, l.Enabled(slog.LevelInfo))
	require.False(t, l.Enabled(slog.LevelDebug))
}
