package logging

import (
	"context"
	"log/slog"

	"dooze/internal/services"
)

// Structured field keys shared by every dooze log line.
const (
	FieldComponent     = "component"
	FieldSessionID     = "session_id"
	FieldStage         = "stage"
	FieldCorrelationID = "correlation_id"
	FieldModel         = "model"
	FieldError         = "error"
)

// ContextFields lists the request-scoped attributes carried by ctx: the
// session id, the studio stage and the HTTP correlation id, in that order.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	add := func(key, value string, ok bool) {
		if ok && value != "" {
			fields = append(fields, slog.String(key, value))
		}
	}
	id, ok := services.SessionIDFromContext(ctx)
	add(FieldSessionID, id, ok)
	stage, ok := services.StageFromContext(ctx)
	add(FieldStage, stage, ok)
	rid, ok := services.RequestIDFromContext(ctx)
	add(FieldCorrelationID, rid, ok)
	return fields
}

// WithContext binds the ContextFields of ctx onto logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	logger = orNop(logger)
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(toArgs(fields)...)
	}
	return logger
}
