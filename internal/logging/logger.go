package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dooze/internal/config"
)

// LogFileName is the file written under paths.log_dir.
const LogFileName = "dooze.log"

// Options describes logger construction parameters. OutputPaths accepts
// "stdout", "stderr" or file paths; it defaults to stderr.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
}

// New builds a logger from opts.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	lvl := new(slog.LevelVar)
	lvl.Set(level)

	build, err := handlerFor(opts.Format)
	if err != nil {
		return nil, err
	}
	out, err := openOutputs(opts.OutputPaths)
	if err != nil {
		return nil, err
	}
	return slog.New(build(out, lvl, opts.Development || level <= slog.LevelDebug)), nil
}

// NewFromConfig builds the application logger: stderr, so stdout stays
// pipeable, plus the log file when paths.log_dir is set.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	outputs := []string{"stderr"}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		outputs = append(outputs, filepath.Join(dir, LogFileName))
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

type handlerBuilder func(io.Writer, *slog.LevelVar, bool) slog.Handler

func handlerFor(format string) (handlerBuilder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console", "text":
		return newPrettyHandler, nil
	case "json":
		return newJSONHandler, nil
	}
	return nil, fmt.Errorf("log format: unsupported value %q", format)
}

func parseLevel(level string) slog.Level {
	var parsed slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return slog.LevelWarn
	case "":
		return slog.LevelInfo
	default:
		if parsed.UnmarshalText([]byte(level)) != nil {
			return slog.LevelInfo
		}
		return parsed
	}
}

func openOutputs(paths []string) (io.Writer, error) {
	var writers []io.Writer
	seen := make(map[string]bool, len(paths))
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		w, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func openOutput(path string) (io.Writer, error) {
	switch path {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
