package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dooze/internal/config"
)

// Option adjusts a generated test config. base is the per-test temp root.
type Option func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns the default config rooted in a fresh temp directory,
// bound to an ephemeral port and carrying a placeholder Gemini key so no
// test reads real credentials.
func NewConfig(t testing.TB, opts ...Option) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Gemini.APIKey = "test"
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// WithAPIToken sets the bearer token the API requires.
func WithAPIToken(token string) Option {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithoutAPIKeys clears every model credential.
func WithoutAPIKeys() Option {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Gemini.APIKey = ""
		cfg.LLM.APIKey = ""
	}
}

// WithStubPlayer installs a shell script that drains stdin and exits 0, and
// points audio.player_command at it.
func WithStubPlayer() Option {
	return func(t testing.TB, base string, cfg *config.Config) {
		t.Helper()
		binDir := filepath.Join(base, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			t.Fatalf("mkdir bin dir: %v", err)
		}
		player := filepath.Join(binDir, "stub-player")
		if err := os.WriteFile(player, []byte("#!/bin/sh\ncat >/dev/null\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub player: %v", err)
		}
		cfg.Audio.PlayerCommand = []string{player, "-"}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
