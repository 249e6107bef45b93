package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dooze/internal/brief"
	"dooze/internal/narration"
	"dooze/internal/preflight"
	"dooze/internal/testsupport"
)

const sampleScript = `**[HOOK]**
(Visual: close up kopi)
Narator: Capek bangun pagi terus?

**[CTA]**
Narator: Mampir ke Kopi Senja sekarang!

--- 🚀 KELENGKAPAN SEO (Auto-Generated) ---
Judul: Kopi Senja
#kopi #senja`

func TestNarrateDisplayFromStdin(t *testing.T) {
	out, _, err := runCLI(t, []string{"narrate"}, "", sampleScript)
	if err != nil {
		t.Fatalf("narrate: %v", err)
	}
	want := narration.Process(sampleScript, narration.Promotion).Display
	if strings.TrimSpace(out) != strings.TrimSpace(want) {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if strings.Contains(out, "Narator") || strings.Contains(out, "#kopi") {
		t.Fatalf("display output kept labels or SEO: %q", out)
	}
}

func TestNarrateModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte(sampleScript), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"narrate", path, "--mode", "seo"}, "", "")
	if err != nil {
		t.Fatalf("narrate seo: %v", err)
	}
	requireContains(t, out, "KELENGKAPAN SEO")
	requireContains(t, out, "#kopi")

	out, _, err = runCLI(t, []string{"narrate", path, "--mode", "all"}, "", "")
	if err != nil {
		t.Fatalf("narrate all: %v", err)
	}
	requireContains(t, out, "Display narration")
	requireContains(t, out, "Speech narration")

	out, _, err = runCLI(t, []string{"narrate", path, "--json", "--type", "story"}, "", "")
	if err != nil {
		t.Fatalf("narrate json: %v", err)
	}
	var result narration.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if result != narration.Process(sampleScript, narration.Story) {
		t.Fatalf("unexpected result %#v", result)
	}

	if _, _, err := runCLI(t, []string{"narrate", path, "--mode", "karaoke"}, "", ""); err == nil {
		t.Fatal("expected unknown mode error")
	}
	if _, _, err := runCLI(t, []string{"narrate", path, "--type", "poem"}, "", ""); err == nil {
		t.Fatal("expected unknown content type error")
	}
}

func TestRulesPlainOutput(t *testing.T) {
	out, _, err := runCLI(t, []string{"rules", "--type", "web"}, "", "")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	requireContains(t, out, "Web Showcase\tdisplay\tremove line\t")
	requireContains(t, out, "Web Showcase\tspeech\tstrip label\t")
	if strings.Contains(out, "Story") {
		t.Fatalf("expected only Web Showcase rows, got %q", out)
	}
}

func TestRulesJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"rules", "--json"}, "", "")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	var views []rulesView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(views) != len(narration.ContentTypes()) {
		t.Fatalf("expected one view per content type, got %d", len(views))
	}
}

func TestConfigInitShowAndPath(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	t.Setenv("GEMINI_API_KEY", "super-secret")
	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[gemini]")
	requireContains(t, out, redacted)
	if strings.Contains(out, "super-secret") {
		t.Fatal("config show leaked the API key")
	}

	out, _, err = runCLI(t, []string{"config", "path"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, env.configPath)
}

func TestSessionsListShowDelete(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"sessions", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "No sessions")

	store := testsupport.MustOpenStore(t, env.cfg)
	sess := testsupport.NewSession(t, store, testsupport.SampleBrief())

	out, _, err = runCLI(t, []string{"sessions", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, sess.ID)
	requireContains(t, out, "Kopi Senja")

	out, _, err = runCLI(t, []string{"sessions", "show", sess.ID, "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	var view sessionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if view.ID != sess.ID || view.Brief.Platform != brief.TikTokScript {
		t.Fatalf("unexpected session view %#v", view.Session)
	}

	out, _, err = runCLI(t, []string{"sessions", "delete", sess.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("sessions delete: %v", err)
	}
	requireContains(t, out, "Deleted session")

	if _, _, err := runCLI(t, []string{"sessions", "show", sess.ID}, env.configPath, ""); err == nil {
		t.Fatal("expected missing session error")
	}
}

func TestGenerateWithoutKeyFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"generate", "--product", "Kopi Senja", "--description", "Kopi susu gula aren"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "no script generator configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}

	_, _, err = runCLI(t, []string{"generate", "--product", "Kopi Senja"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "description") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSpeakEmptyScript(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"speak"}, env.configPath, "  \n\n")
	if err == nil || err.Error() != brief.Message(brief.Indonesian, brief.MsgEmptyScript) {
		t.Fatalf("expected empty script message, got %v", err)
	}

	_, _, err = runCLI(t, []string{"speak", "--voice", "Alloy"}, env.configPath, "Narator: Halo")
	if err == nil || !strings.Contains(err.Error(), "--voice") {
		t.Fatalf("expected voice error, got %v", err)
	}

	_, _, err = runCLI(t, []string{"speak"}, env.configPath, "Narator: Halo")
	if err == nil || !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestCheckReportsMissingKey(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected preflight failure without an API key")
	}
	requireContains(t, out, "Data directory\tok")
	requireContains(t, out, "Audio player\twarn")
	requireContains(t, out, "Gemini\tfail")
}

func TestCheckWithInstalledPlayer(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubPlayer())

	out, _, _ := runCLI(t, []string{"check"}, env.configPath, "")
	requireContains(t, out, "Audio player\tok")
}

func TestAnalyzeRejectsOversizedVideo(t *testing.T) {
	env := setupCLITestEnv(t)
	video := testsupport.WriteVideo(t, t.TempDir(), "demo.mp4", 2<<20)

	_, _, err := runCLI(t, []string{"analyze", video}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "max_video_mb") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestVideoMIMEType(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteVideo(t, dir, "clip", 64)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := videoMIMEType(path, data); got != "video/mp4" {
		t.Fatalf("expected sniffed video/mp4, got %q", got)
	}
}

func TestCheckStateLabels(t *testing.T) {
	if got := checkState(preflight.Result{Passed: true}); got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
	if got := checkState(preflight.Result{Optional: true}); got != "warn" {
		t.Fatalf("expected warn, got %q", got)
	}
	if got := checkState(preflight.Result{}); got != "fail" {
		t.Fatalf("expected fail, got %q", got)
	}
}
