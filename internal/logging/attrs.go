package logging

import (
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so callers only import this package.
type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }
func Int(key string, value int) Attr { return slog.Int(key, value) }
func Bool(key string, value bool) Attr { return slog.Bool(key, value) }
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Error records err under the "error" key. A nil error is dropped by the
// handlers instead of printing a placeholder.
func Error(err error) Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(FieldError, err)
}

// Session tags a line with a studio session id.
func Session(id string) Attr { return slog.String(FieldSessionID, id) }

// Model tags a line with the external model a call went to.
func Model(name string) Attr { return slog.String(FieldModel, name) }

func toArgs(attrs []Attr) []any {
	out := make([]any, len(attrs))
	for i := range attrs {
		out[i] = attrs[i]
	}
	return out
}
