package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RunIDContextKey carries the ID of the audit run being executed
	RunIDContextKey contextKey = "run_id"
	// SessionIDContextKey carries the ID of the session the run belongs to
	SessionIDContextKey contextKey = "session_id"
)

// loggedContextKeys are added to every log record, in this order
var loggedContextKeys = []contextKey{SessionIDContextKey, RunIDContextKey}

func contextID(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(key).(string)
	return id
}

// WithRunID returns ctx carrying runID
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetRunID returns the run ID in ctx, or ""
func GetRunID(ctx context.Context) string {
	return contextID(ctx, RunIDContextKey)
}

// WithSessionID returns ctx carrying sessionID
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDContextKey, sessionID)
}

// EnsureRunID returns ctx unchanged if it already has a run ID, otherwise a
// copy carrying a fresh one.
func EnsureRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) != "" {
		return ctx
	}
	return WithRunID(ctx, uuid.NewString())
}

// WithComponent tags logger with the component name. A nil logger uses the
// process logger.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

// WithError tags logger with err's message; a nil err returns logger as is.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}
