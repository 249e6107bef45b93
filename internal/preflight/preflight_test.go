package preflight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dooze/internal/config"
	"dooze/internal/services"
)

type stubChecker struct {
	err error
}

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func stubGemini(t *testing.T, err error) {
	t.Helper()
	orig := newGeminiChecker
	newGeminiChecker = func(context.Context, config.Gemini) (healthChecker, error) {
		return stubChecker{err: err}, nil
	}
	t.Cleanup(func() { newGeminiChecker = orig })
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckGemini(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		result := CheckGemini(context.Background(), config.Gemini{})
		if result.Passed || !strings.Contains(result.Detail, "API key missing") {
			t.Fatalf("unexpected result %#v", result)
		}
	})
	t.Run("reachable", func(t *testing.T) {
		stubGemini(t, nil)
		result := CheckGemini(context.Background(), config.Gemini{APIKey: "k", TextModel: "m"})
		if !result.Passed || !strings.Contains(result.Detail, "m") {
			t.Fatalf("unexpected result %#v", result)
		}
	})
	t.Run("timeout", func(t *testing.T) {
		stubGemini(t, services.Wrap(services.ErrTimeout, "gemini", "health", "m", context.DeadlineExceeded))
		result := CheckGemini(context.Background(), config.Gemini{APIKey: "k", TextModel: "m"})
		if result.Passed || !strings.Contains(result.Detail, "timed out") {
			t.Fatalf("unexpected result %#v", result)
		}
	})
	t.Run("rejected", func(t *testing.T) {
		stubGemini(t, errors.New("permission denied"))
		result := CheckGemini(context.Background(), config.Gemini{APIKey: "k", TextModel: "m"})
		if result.Passed || result.Detail != "permission denied" {
			t.Fatalf("unexpected result %#v", result)
		}
	})
}

func TestCheckLLM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	ok := CheckLLM(context.Background(), "OpenRouter", config.LLMConfig{APIKey: "good", BaseURL: srv.URL, Model: "m"})
	if !ok.Passed {
		t.Fatalf("expected pass, got: %s", ok.Detail)
	}

	bad := CheckLLM(context.Background(), "OpenRouter", config.LLMConfig{APIKey: "bad", BaseURL: srv.URL, Model: "m"})
	if bad.Passed || !strings.HasPrefix(bad.Detail, "rejected") {
		t.Fatalf("expected rejection, got %#v", bad)
	}

	missing := CheckLLM(context.Background(), "OpenRouter", config.LLMConfig{})
	if missing.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func TestCheckPlayerIsOptional(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	result := CheckPlayer([]string{"aplay", "-q", "-"})
	if result.Passed || !result.Optional {
		t.Fatalf("expected optional failure, got %#v", result)
	}
	if !Ready([]Result{result}) {
		t.Fatal("optional failure must not block readiness")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_GeminiProvider(t *testing.T) {
	stubGemini(t, nil)
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	if err := os.MkdirAll(cfg.AudioDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Gemini.APIKey = "k"
	cfg.Audio.PlayerCommand = []string{"definitely-not-a-player"}

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed && !r.Optional {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if !Ready(results) {
		t.Fatal("expected ready")
	}
}

func TestRunAll_OpenRouterProvider(t *testing.T) {
	stubGemini(t, nil)
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Gemini.APIKey = "k"
	cfg.Generator.Provider = config.ProviderOpenRouter

	results := RunAll(context.Background(), &cfg)
	last := results[len(results)-1]
	if last.Name != "OpenRouter" || last.Passed {
		t.Fatalf("expected failing OpenRouter check without key, got %#v", last)
	}
	if Ready(results) {
		t.Fatal("expected not ready")
	}
}
