package narration

import (
	"regexp"
	"strings"
	"unicode"
)

// SpeechFilter turns a raw script into one flat string for a speech engine.
// It is stricter than DisplayFilter: it stops at the SEO block, drops any
// line that opens with a bracket and applies one shared keyword table
// regardless of content type.
type SpeechFilter struct {
	// ignoreLine matches a direction at the start of the raw line, where a
	// plain space after the keyword is enough ("Text muncul di layar").
	ignoreLine *regexp.Regexp
	// ignoreLabelled matches a direction uncovered by label stripping; it
	// needs the explicit separator so spoken words like "Musik membuat..."
	// survive.
	ignoreLabelled *regexp.Regexp
	stripLabel     *regexp.Regexp
	first          []lineStage
	rest           []lineStage
}

// NewSpeechFilter compiles rules into a filter.
func NewSpeechFilter(rules RuleSet) *SpeechFilter {
	f := &SpeechFilter{
		ignoreLine:     compileStemPattern(`\[?`, rules.RemoveLine, `(?:\s+\d+)?(?:[:\-]|\s|$)`),
		ignoreLabelled: compileStemPattern("", rules.RemoveLine, `(?:\s+\d+)?\s*[:\-]`),
		stripLabel:     compileStemPattern("", rules.StripLabel, `(?:\s+\d+)?\s*[:\-]\s*`),
	}
	f.first = f.pipeline(f.ignoreLine)
	f.rest = f.pipeline(f.ignoreLabelled)
	return f
}

func (f *SpeechFilter) pipeline(direction *regexp.Regexp) []lineStage {
	return []lineStage{
		trimLine,
		skipBracketed,
		dropMatching(direction),
		f.stripSpeakerLabel,
		removeAsides,
		trimLine,
		requireSpeakable,
	}
}

// speechStopDash and speechStopKeyword must both appear on a line, in either
// order, for the speech filter to stop reading.
var (
	speechStopDash    = regexp.MustCompile(`-{3,}`)
	speechStopKeyword = regexp.MustCompile(`(?i)\bseo\b|kelengkapan|info\s+tambahan|additional\s+info`)
)

func isSpeechStop(line string) bool {
	return speechStopDash.MatchString(line) && speechStopKeyword.MatchString(line)
}

var defaultSpeechFilter = NewSpeechFilter(SpeechRules())

// Speech cleans raw with the shared speech rules.
func Speech(raw string) string {
	return defaultSpeechFilter.Filter(raw)
}

// Filter returns the spoken lines of raw joined by single spaces. When
// nothing survives it falls back to raw with square-bracketed spans removed,
// so non-empty input never yields an empty result.
func (f *SpeechFilter) Filter(raw string) string {
	text := markdownChars.ReplaceAllString(raw, "")
	var spoken []string
	for _, line := range strings.Split(text, "\n") {
		if isSpeechStop(line) {
			break
		}
		if cleaned, ok := f.CleanLine(line); ok {
			spoken = append(spoken, cleaned)
		}
	}
	if len(spoken) == 0 {
		return speechFallback(raw)
	}
	return strings.Join(spoken, " ")
}

// CleanLine applies the per-line pipeline until the line stops changing.
// Only the first pass judges directions by a bare leading keyword; later
// passes see text uncovered by label stripping and drop it only on an
// explicit "Keyword:" form.
func (f *SpeechFilter) CleanLine(line string) (string, bool) {
	current, ok := runStages(f.first, line)
	for ok {
		next, kept := runStages(f.rest, current)
		if !kept {
			return "", false
		}
		if next == current {
			return next, true
		}
		current = next
	}
	return "", false
}

func dropMatching(pattern *regexp.Regexp) lineStage {
	return func(line string) (string, bool) {
		if pattern != nil && pattern.MatchString(line) {
			return "", false
		}
		return line, true
	}
}

func (f *SpeechFilter) stripSpeakerLabel(line string) (string, bool) {
	if f.stripLabel == nil {
		return line, true
	}
	if loc := f.stripLabel.FindStringIndex(line); loc != nil {
		return line[loc[1]:], true
	}
	return line, true
}

func skipBracketed(line string) (string, bool) {
	if strings.HasPrefix(line, "[") {
		return "", false
	}
	return line, true
}

// requireSpeakable drops lines such as "---" that hold no letter or digit.
func requireSpeakable(line string) (string, bool) {
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return line, true
		}
	}
	return "", false
}

func speechFallback(raw string) string {
	if fallback := strings.TrimSpace(squareAside.ReplaceAllString(raw, "")); fallback != "" {
		return fallback
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return raw
}
