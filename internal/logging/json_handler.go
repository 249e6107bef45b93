package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// jsonKeys renames slog's built-in keys for the JSON log format.
var jsonKeys = map[string]string{
	slog.TimeKey:    "ts",
	slog.LevelKey:   "level",
	slog.MessageKey: "msg",
	slog.SourceKey:  "caller",
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: rewriteJSONAttr,
	})
}

func rewriteJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	renamed, builtin := jsonKeys[attr.Key]
	if !builtin {
		return attr
	}
	attr.Key = renamed
	switch v := attr.Value.Any().(type) {
	case time.Time:
		attr.Value = slog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case slog.Level:
		attr.Value = slog.StringValue(strings.ToLower(v.String()))
	case *slog.Source:
		if v != nil {
			attr.Value = slog.StringValue(filepath.Base(v.File) + ":" + strconv.Itoa(v.Line))
		}
	}
	return attr
}
