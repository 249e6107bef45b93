package textutil

import (
	"strings"
	"unicode"
)

const ellipsis = "…"

// SanitizeFileName makes name safe to use as a single path element.
// Separators and wildcards become dashes, shell-hostile punctuation and
// control characters are dropped.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*`, r):
			return '-'
		case strings.ContainsRune(`?"<>|`, r), unicode.IsControl(r):
			return -1
		}
		return r
	}, name))
}

// AudioDownloadName is the attachment name offered for a narration rendered
// with voice: dooze-voice-<voice>.wav.
func AudioDownloadName(voice string) string {
	slug := strings.Join(strings.Fields(SanitizeFileName(voice)), "-")
	if slug == "" {
		slug = "narration"
	}
	return "dooze-voice-" + slug + ".wav"
}

// Preview flattens text to one line and cuts it to at most limit runes,
// ending a cut with an ellipsis. A non-positive limit only flattens.
func Preview(text string, limit int) string {
	line := strings.Join(strings.Fields(text), " ")
	runes := []rune(line)
	if limit <= 0 || len(runes) <= limit {
		return line
	}
	return strings.TrimSpace(string(runes[:limit-1])) + ellipsis
}
