package brief

import (
	"strings"
	"testing"

	"dooze/internal/narration"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		name string
		b    Brief
		want Mode
	}{
		{"showcase beats short video", Brief{ContentType: narration.WebShowcase, Platform: TikTokScript}, ModeWebShowcase},
		{"promotion on shorts", Brief{ContentType: narration.Promotion, Platform: YouTubeShorts}, ModeShortVideo},
		{"story on instagram", Brief{ContentType: narration.Story, Platform: Instagram}, ModeShortVideo},
		{"story on email", Brief{ContentType: narration.Story, Platform: Email}, ModeStory},
		{"promotion on linkedin", Brief{ContentType: narration.Promotion, Platform: LinkedIn}, ModePromotion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFor(tt.b); got != tt.want {
				t.Fatalf("ModeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPromptShortVideoIncludesSeparator(t *testing.T) {
	b := Brief{ProductName: "Dooze", Description: "alarm pintar", Platform: TikTokScript}.Normalize()
	prompt := BuildPrompt(b)
	if prompt.Mode != ModeShortVideo {
		t.Fatalf("unexpected mode %q", prompt.Mode)
	}
	if !strings.Contains(prompt.User, SEOSeparator) {
		t.Fatalf("expected seo separator in prompt")
	}
	if !strings.Contains(prompt.User, "BAHASA INDONESIA") || !strings.Contains(prompt.User, "natural Indonesian") {
		t.Fatalf("expected indonesian language instructions, got %q", prompt.User)
	}
	if !strings.Contains(prompt.System, "SEO Strategist") {
		t.Fatalf("unexpected system instruction %q", prompt.System)
	}
	if !narration.IsSEODelimiter(SEOSeparator) {
		t.Fatal("separator must be recognised by the splitter")
	}
}

func TestBuildPromptStoryPersonaOnShortVideo(t *testing.T) {
	b := Brief{ContentType: narration.Story, ProductName: "Si Kancil", Description: "fabel", Language: English}.Normalize()
	prompt := BuildPrompt(b)
	if !strings.Contains(prompt.System, "best-selling author") {
		t.Fatalf("expected storyteller persona, got %q", prompt.System)
	}
	for _, fragment := range []string{"Topic/Product: Si Kancil", "Tone: Dramatic", "Output Language: ENGLISH"} {
		if !strings.Contains(prompt.User, fragment) {
			t.Fatalf("expected %q in prompt", fragment)
		}
	}
}

func TestVideoAnalysisPromptLanguage(t *testing.T) {
	if !strings.Contains(VideoAnalysisPrompt(English), "Use ENGLISH") {
		t.Fatal("expected english instruction")
	}
	if !strings.Contains(VideoAnalysisPrompt(Indonesian), "BAHASA INDONESIA") {
		t.Fatal("expected indonesian instruction")
	}
}
