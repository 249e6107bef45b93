package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"dooze/internal/config"
	"dooze/internal/services"
	"dooze/internal/services/gemini"
	"dooze/internal/services/llm"
)

const checkTimeout = 30 * time.Second

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

var newGeminiChecker = func(ctx context.Context, cfg config.Gemini) (healthChecker, error) {
	return gemini.New(ctx, gemini.Config{
		APIKey:         cfg.APIKey,
		TextModel:      cfg.TextModel,
		VideoModel:     cfg.VideoModel,
		SpeechModel:    cfg.SpeechModel,
		TimeoutSeconds: cfg.TimeoutSeconds,
	})
}

// CheckGemini verifies that the Gemini API accepts the configured key and
// text model. It makes a single attempt.
func CheckGemini(ctx context.Context, cfg config.Gemini) Result {
	const name = "Gemini"
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing (set GEMINI_API_KEY)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := newGeminiChecker(checkCtx, cfg)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("API reachable (%s)", cfg.TextModel)}
}

// CheckLLM verifies that the chat completion API is reachable and the key is
// valid.
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig) Result {
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing (set OPENROUTER_API_KEY)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client := llm.NewClient(llm.ConfigFrom(cfg))

	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("API reachable (%s)", cfg.Model)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, services.ErrTimeout) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	if errors.Is(err, services.ErrConfiguration) {
		return "rejected: " + err.Error()
	}
	return err.Error()
}
