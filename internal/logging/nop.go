package logging

import (
	"context"
	"log/slog"
)

// NewNop returns a logger that drops everything. Wiring code falls back to it
// when no logger was supplied.
func NewNop() *slog.Logger { return slog.New(discard{}) }

// NewComponentLogger scopes logger to a dooze component; the console handler
// renders it as a bracketed prefix.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	return orNop(logger).With(slog.String(FieldComponent, component))
}

func orNop(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler { return d }
func (d discard) WithGroup(string) slog.Handler { return d }
