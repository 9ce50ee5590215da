package common

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID contextKey = "run_id"
)

// WithRunID adds a batch run ID to the context
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the run ID from context, or uuid.Nil
func RunIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ContextKeyRunID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// LoggerWithRun tags logger with the run ID carried by ctx, if any.
func LoggerWithRun(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if id := RunIDFromContext(ctx); id != uuid.Nil {
		return logger.With("run_id", id.String())
	}
	return logger
}
