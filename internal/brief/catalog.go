package brief

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"dooze/internal/narration"
)

// Platform is where the generated content will be published.
type Platform string

const (
	Instagram     Platform = "Instagram"
	LinkedIn      Platform = "LinkedIn"
	Twitter       Platform = "Twitter"
	Email         Platform = "Email"
	TikTokScript  Platform = "TikTok Script"
	YouTubeShorts Platform = "YouTube Shorts"
)

// Platforms lists the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{Instagram, LinkedIn, Twitter, Email, TikTokScript, YouTubeShorts}
}

var platformAliases = map[string]Platform{
	"instagram":     Instagram,
	"ig":            Instagram,
	"linkedin":      LinkedIn,
	"twitter":       Twitter,
	"x":             Twitter,
	"email":         Email,
	"tiktok":        TikTokScript,
	"tiktokscript":  TikTokScript,
	"youtubeshorts": YouTubeShorts,
	"shorts":        YouTubeShorts,
}

// ParsePlatform accepts canonical names and compact spellings ("tiktok", "shorts").
func ParsePlatform(value string) (Platform, error) {
	key := foldKey(value)
	if key == "" {
		return "", fmt.Errorf("platform is empty")
	}
	if p, ok := platformAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", value)
}

// IsShortVideo reports whether the platform publishes short vertical video,
// which gets a script plus an SEO pack.
func (p Platform) IsShortVideo() bool {
	switch p {
	case Instagram, TikTokScript, YouTubeShorts:
		return true
	default:
		return false
	}
}

// Voice is a prebuilt speech synthesis voice.
type Voice string

const (
	Kore   Voice = "Kore"
	Puck   Voice = "Puck"
	Charon Voice = "Charon"
	Fenrir Voice = "Fenrir"
	Zephyr Voice = "Zephyr"
)

// DefaultVoice is used when no voice is requested.
const DefaultVoice = Kore

// Voices lists the available prebuilt voices.
func Voices() []Voice {
	return []Voice{Kore, Puck, Charon, Fenrir, Zephyr}
}

// ParseVoice matches a voice name case-insensitively. An empty value yields
// DefaultVoice.
func ParseVoice(value string) (Voice, error) {
	key := foldKey(value)
	if key == "" {
		return DefaultVoice, nil
	}
	for _, v := range Voices() {
		if foldKey(string(v)) == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown voice %q", value)
}

var tonesByType = map[narration.ContentType][]string{
	narration.Promotion:   {"Excited", "Professional", "Casual", "Luxury", "Humorous", "Persuasive"},
	narration.Story:       {"Dramatic", "Inspiring", "Spooky", "Fairytale", "Funny", "Melancholic", "Suspenseful"},
	narration.WebShowcase: {"Professional", "Technical", "Enthusiastic", "Minimalist", "Innovative", "Tutorial Style"},
}

// Tones lists the suggested tones for a content type; the first is the default.
func Tones(ct narration.ContentType) []string {
	if tones, ok := tonesByType[ct]; ok {
		return append([]string(nil), tones...)
	}
	return append([]string(nil), tonesByType[narration.Promotion]...)
}

// DefaultTone returns the tone a new brief of type ct starts with.
func DefaultTone(ct narration.ContentType) string {
	return Tones(ct)[0]
}

func foldKey(value string) string {
	key := cases.Fold().String(strings.TrimSpace(value))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
}
