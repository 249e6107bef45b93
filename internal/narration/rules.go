package narration

import (
	"regexp"
	"sort"
	"strings"
)

// RuleSet holds case-insensitive keyword stems matched at the start of a
// line. A stem may be followed by an ordinal ("Scene 2") before its
// separator.
type RuleSet struct {
	// RemoveLine stems mark technical directions. Matching lines are dropped.
	RemoveLine []string
	// StripLabel stems mark speaker or section labels. Only the label is
	// removed and the rest of the line is kept.
	StripLabel []string
}

var baseDisplayRules = RuleSet{
	RemoveLine: []string{
		"Visual", "Video", "Gambar", "Image", "Footage", "Shot", "Frame", "Clip",
		"Audio", "Suara", "Sound", "Musik", "Music", "BGM", "Backsound", "SFX", "Efek",
		"Cut to", "Fade", "Dissolve", "Zoom", "Pan", "Tilt",
		"Durasi", "Duration", "Format", "Ratio",
	},
	StripLabel: []string{
		"Narator", "Narrator", "Host", "Presenter", "Voiceover", "VO", "Speaker",
		"Man", "Woman", "Boy", "Girl", "Character",
		"Penutur", "Pencerita", "Pria", "Wanita", "Anak", "Ibu", "Bapak",
		"Cowok", "Cewek", "Tokoh", "Orang",
	},
}

var displayRulesByType = map[ContentType]RuleSet{
	Promotion: {
		RemoveLine: []string{"Scene", "Adegan"},
		StripLabel: []string{
			"Hook", "Intro", "Opening", "Pembuka",
			"Isi", "Body", "Content",
			"Outro", "Closing", "Penutup", "CTA", "Call to Action",
			"Headline", "Caption", "Text", "Teks", "Tulisan",
			"Problem", "Masalah", "Solusi", "Solution",
			"Benefit", "Manfaat", "Keunggulan",
		},
	},
	WebShowcase: {
		RemoveLine: []string{"Slide", "Layar", "Screen", "Kursor", "Cursor", "Click", "Hover"},
		StripLabel: []string{
			"Intro", "Opening", "Fitur", "Feature", "Demo",
			"Stack", "Teknologi", "Technology",
			"Closing", "Outro", "Step", "Langkah", "Bagian", "Part",
		},
	},
	Story: {
		RemoveLine: []string{
			"Act", "Bab", "Chapter", "Scene", "Adegan",
			"Setting", "Latar", "Lokasi", "Place", "Context",
		},
	},
}

var speechRules = RuleSet{
	RemoveLine: []string{
		"Visual", "Video", "Gambar", "Image", "Footage", "Scene", "Adegan", "Shot", "Frame", "Clip",
		"Audio", "Suara", "Sound", "Musik", "Music", "BGM", "Backsound", "SFX", "Efek",
		"Text", "Teks", "Caption", "Tulisan", "Headline", "Lower Third",
		"Setting", "Latar", "Lokasi", "Place",
		"Cut to", "Fade", "Dissolve", "Zoom", "Pan", "Tilt",
	},
	StripLabel: []string{
		"Narator", "Narrator", "Host", "Presenter", "Voiceover", "VO", "Speaker",
		"Karakter", "Character", "Pria", "Wanita", "Anak", "Ibu", "Bapak",
		"Cowok", "Cewek", "Tokoh", "Orang", "Man", "Woman", "Boy", "Girl",
	},
}

// DisplayRules returns the base display rules merged with the additions for
// ct. Unknown content types get the base rules only.
func DisplayRules(ct ContentType) RuleSet {
	return mergeRules(baseDisplayRules, displayRulesByType[ct])
}

// SpeechRules returns the content-type-agnostic table used by the speech filter.
func SpeechRules() RuleSet {
	return mergeRules(speechRules, RuleSet{})
}

// mergeRules appends extra to base, dropping stems already present in any
// letter case. The inputs are never modified.
func mergeRules(base, extra RuleSet) RuleSet {
	return RuleSet{
		RemoveLine: mergeStems(base.RemoveLine, extra.RemoveLine),
		StripLabel: mergeStems(base.StripLabel, extra.StripLabel),
	}
}

func mergeStems(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range lists {
		for _, stem := range list {
			stem = strings.TrimSpace(stem)
			if stem == "" {
				continue
			}
			key := strings.ToLower(stem)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, stem)
		}
	}
	return merged
}

// stemAlternation renders stems as a regexp alternation, longest first so the
// most specific stem is preferred. Inner spaces match any whitespace run.
func stemAlternation(stems []string) string {
	ordered := append([]string(nil), stems...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	parts := make([]string, 0, len(ordered))
	for _, stem := range ordered {
		words := strings.Fields(stem)
		for i, word := range words {
			words[i] = regexp.QuoteMeta(word)
		}
		parts = append(parts, strings.Join(words, `\s+`))
	}
	return strings.Join(parts, "|")
}

// compileStemPattern builds a case-insensitive line-start pattern for stems.
// It returns nil for an empty stem list so callers never match everything.
func compileStemPattern(prefix string, stems []string, suffix string) *regexp.Regexp {
	if len(stems) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)^` + prefix + `(?:` + stemAlternation(stems) + `)` + suffix)
}
