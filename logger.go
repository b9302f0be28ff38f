package intdict

import (
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Default sampling for resize-failure warnings.
const (
	defaultWarnInterval = time.Second
	defaultWarnBurst    = 5
)

// Logger wraps slog.Logger with dictionary-specific context.
// This provides structured logging with consistent field names.
//
// Failure warnings are sampled: a dictionary stuck at its memory budget fails
// every growing Put, and only a few of those warnings per interval are
// emitted. The number of dropped warnings is attached to the next one.
type Logger struct {
	*slog.Logger

	limiter    *rate.Limiter
	suppressed *atomic.Int64
}

func newLogger(l *slog.Logger) *Logger {
	return &Logger{
		Logger:     l,
		limiter:    rate.NewLimiter(rate.Every(defaultWarnInterval), defaultWarnBurst),
		suppressed: new(atomic.Int64),
	}
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return newLogger(slog.New(handler))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return newLogger(slog.New(handler))
}

// WithWarnLimit replaces the sampling of failure warnings.
// A limit of rate.Inf disables sampling.
func (l *Logger) WithWarnLimit(limit rate.Limit, burst int) *Logger {
	return &Logger{
		Logger:     l.Logger,
		limiter:    rate.NewLimiter(limit, burst),
		suppressed: new(atomic.Int64),
	}
}

// WithName adds a name field to the logger (useful for telling dictionaries apart).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger:     l.Logger.With("dictionary", name),
		limiter:    l.limiter,
		suppressed: l.suppressed,
	}
}

// Suppressed returns the number of warnings dropped since the last emitted one.
func (l *Logger) Suppressed() int64 {
	return l.suppressed.Load()
}

func (l *Logger) warn(msg string, args ...any) {
	if !l.limiter.Allow() {
		l.suppressed.Add(1)
		return
	}
	if n := l.suppressed.Swap(0); n > 0 {
		args = append(args, "suppressed", n)
	}
	l.Warn(msg, args...)
}

// LogPut logs a put operation.
func (l *Logger) LogPut(key int, inserted bool, err error) {
	switch {
	case err != nil:
		l.warn("put failed",
			"key", key,
			"inserted", inserted,
			"error", err,
		)
	case inserted:
		l.Debug("put inserted",
			"key", key,
		)
	default:
		l.Debug("put updated",
			"key", key,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(key int, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		l.Debug("delete missed",
			"key", key,
		)
	case err != nil:
		l.warn("delete failed",
			"key", key,
			"error", err,
		)
	default:
		l.Debug("delete completed",
			"key", key,
		)
	}
}

// LogResize logs a capacity change requested by the capacity policy.
func (l *Logger) LogResize(op string, from, to int, err error) {
	if err != nil {
		l.warn("resize failed",
			"op", op,
			"from", from,
			"to", to,
			"error", err,
		)
	} else {
		l.Debug("resize completed",
			"op", op,
			"from", from,
			"to", to,
		)
	}
}

// LogBuild logs a bulk construction.
func (l *Logger) LogBuild(pairs, length int, err error) {
	if err != nil {
		l.Error("build failed",
			"pairs", pairs,
			"error", err,
		)
	} else {
		l.Debug("build completed",
			"pairs", pairs,
			"length", length,
		)
	}
}
