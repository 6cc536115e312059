package lenskit

import (
	"context"
	"log/slog"
	"os"

	"github.com/longlongdada/lenskit/ratings"
)

// Logger wraps slog.Logger with lenskit-specific context.
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

// WithUser adds a user field to the logger (useful for tagging a whole
// search).
func (l *Logger) WithUser(user ratings.UserID) *Logger {
	return &Logger{
		Logger: l.Logger.With("user", int64(user)),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSearch logs one neighborhood search.
func (l *Logger) LogSearch(ctx context.Context, user ratings.UserID, candidates, items int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "neighborhood search failed",
			"user", int64(user),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "neighborhood search completed",
			"user", int64(user),
			"candidates", candidates,
			"items", items,
		)
	}
}

// LogBatchSearch logs a batch neighborhood search.
func (l *Logger) LogBatchSearch(ctx context.Context, users, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch search completed with failures",
			"total", users,
			"failed", failed,
			"success", users-failed,
		)
	} else {
		l.InfoContext(ctx, "batch search completed",
			"users", users,
		)
	}
}

// LogVectorRebuild logs a rating-vector cache rebuild.
func (l *Logger) LogVectorRebuild(ctx context.Context, user ratings.UserID, ratingCount int) {
	l.DebugContext(ctx, "rating vector rebuilt",
		"user", int64(user),
		"ratings", ratingCount,
	)
}
