package preflight

import (
	"context"

	"dooze/internal/config"
	"dooze/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every preflight check for the given config. Gemini is
// always checked because speech synthesis and video analysis use it; the
// OpenRouter endpoint is checked only when it generates scripts.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Audio directory", cfg.AudioDir()),
		CheckPlayer(cfg.Audio.PlayerCommand),
		CheckGemini(ctx, cfg.Gemini),
	}

	if cfg.Generator.Provider == config.ProviderOpenRouter {
		results = append(results, CheckLLM(ctx, "OpenRouter", cfg.GetLLM()))
	}

	return results
}

// Ready reports whether every required check passed.
func Ready(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return false
		}
	}
	return true
}

// CheckPlayer reports whether the configured audio player is installed.
func CheckPlayer(command []string) Result {
	status := deps.CheckPlayer(command)
	result := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional}
	if status.Available {
		result.Detail = status.Command
	} else {
		result.Detail = status.Detail + " (playback disabled)"
	}
	return result
}
