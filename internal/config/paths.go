package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDirectories creates the data, audio and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.AudioDir(), c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the sqlite session database location.
func (c *Config) DatabasePath() string { return filepath.Join(c.Paths.DataDir, "dooze.db") }

// AudioDir returns the directory synthesized WAV files are written to.
func (c *Config) AudioDir() string { return filepath.Join(c.Paths.DataDir, "audio") }

// LockPath returns the single-instance lock file used by the API server.
func (c *Config) LockPath() string { return filepath.Join(c.Paths.DataDir, "dooze.lock") }

// MaxVideoBytes returns the upload limit for video analysis.
func (c *Config) MaxVideoBytes() int64 { return int64(c.Audio.MaxVideoMB) << 20 }

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute, cleaned path. The empty string stays empty.
func ExpandPath(path string) (string, error) { return expandPath(path) }

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	return abs, nil
}
