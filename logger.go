package memarena

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// LogCreate logs arena construction.
func (l *Logger) LogCreate(capacity int, offHeap bool) {
	l.Info("arena created",
		"capacity", capacity,
		"off_heap", offHeap,
	)
}

// LogAlloc logs a single allocation attempt.
func (l *Logger) LogAlloc(size int, err error) {
	if err != nil {
		l.Debug("allocation failed",
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("allocation completed",
			"size", size,
		)
	}
}

// LogFree logs a deallocation.
func (l *Logger) LogFree(size int) {
	l.Debug("free completed",
		"size", size,
	)
}

// LogReset logs a bulk reset.
func (l *Logger) LogReset(capacity int) {
	l.Debug("arena reset",
		"capacity", capacity,
	)
}

// LogClose logs arena teardown.
func (l *Logger) LogClose(err error) {
	if err != nil {
		l.Error("arena close failed",
			"error", err,
		)
	} else {
		l.Info("arena closed")
	}
}
