// Package log is the structured logger of the dilithium package: a thin
// layer over log/slog that tags records with the emitting module.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// Logger wraps slog.Logger.
type Logger struct {
	inner *slog.Logger
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	return NewWithHandler(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewWithHandler creates a Logger backed by h.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// Default returns the process-wide logger, JSON on stderr at LevelInfo.
var Default = sync.OnceValue(func() *Logger { return New(slog.LevelInfo) })

// Module returns a child logger with a "module" attribute.
func (l *Logger) Module(name string) *Logger {
	return l.With("module", name)
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Enabled reports whether records at level would be emitted, so that
// callers can skip computing expensive attributes.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.inner.Enabled(context.Background(), level)
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }
