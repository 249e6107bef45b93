package narration

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	leadingDigitOrdinal  = regexp.MustCompile(`^\d+[.)]\s+`)
	leadingLetterOrdinal = regexp.MustCompile(`^[A-Z][.)]\s+`)
	squareAside          = regexp.MustCompile(`\[.*?\]`)
	roundAside           = regexp.MustCompile(`\(.*?\)`)
	markdownChars        = regexp.MustCompile("[*#_`]")
	emojiRunes           = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}\x{200D}]`)
	inlineTimestamp      = regexp.MustCompile(`\(?\d{1,2}:\d{2}(?::\d{2})?\)?`)
	genericLabel         = regexp.MustCompile(`^([A-Za-z0-9 ]+?)\s*:\s*(.+)$`)
	punctuation          = regexp.MustCompile(`[.,;!?:"'\-]`)
)

// maxGenericLabel bounds the length of an unrecognised "Name:" prefix that is
// still treated as a speaker label.
const maxGenericLabel = 19

// lineStage transforms one line. Returning false drops the line.
type lineStage func(string) (string, bool)

// DisplayFilter turns a main script into paragraph text for the reading view.
type DisplayFilter struct {
	removeLine *regexp.Regexp
	stripLabel *regexp.Regexp
	stages     []lineStage
}

// NewDisplayFilter compiles rules into a filter.
func NewDisplayFilter(rules RuleSet) *DisplayFilter {
	f := &DisplayFilter{
		removeLine: compileStemPattern("", rules.RemoveLine, `(?:\s+\d+)?\s*(?:[:\-]|$)`),
		stripLabel: compileStemPattern("", rules.StripLabel, `(?:\s+\d+)?\s*[:\-]\s*`),
	}
	f.stages = []lineStage{
		trimLine,
		skipStructural,
		stripOrdinal,
		f.dropDirection,
		skipWrapped,
		removeAsides,
		stripMarkdown,
		stripEmoji,
		stripTimestamps,
		f.stripSpeakerLabel,
		unquote,
		requireContent,
	}
	return f
}

var displayFilters = func() map[ContentType]*DisplayFilter {
	filters := make(map[ContentType]*DisplayFilter)
	for _, ct := range ContentTypes() {
		filters[ct] = NewDisplayFilter(DisplayRules(ct))
	}
	return filters
}()

var baseDisplayFilter = NewDisplayFilter(DisplayRules(""))

// DisplayFilterFor returns the shared filter for ct. Unknown content types
// fall back to the base rules.
func DisplayFilterFor(ct ContentType) *DisplayFilter {
	if f, ok := displayFilters[ct]; ok {
		return f
	}
	return baseDisplayFilter
}

// Display cleans mainScript with the rules for ct.
func Display(mainScript string, ct ContentType) string {
	return DisplayFilterFor(ct).Filter(mainScript)
}

// Filter cleans every line of mainScript and joins the survivors with a
// blank line between them.
func (f *DisplayFilter) Filter(mainScript string) string {
	lines := strings.Split(mainScript, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned, ok := f.CleanLine(line); ok {
			kept = append(kept, cleaned)
		}
	}
	return strings.Join(kept, "\n\n")
}

// CleanLine runs the pipeline until the line stops changing, so a label
// that hid a direction ("Host: Visual: ...") is caught on the next pass.
// Every stage only removes text, which bounds the loop.
func (f *DisplayFilter) CleanLine(line string) (string, bool) {
	current := line
	for {
		next, ok := runStages(f.stages, current)
		if !ok {
			return "", false
		}
		if next == current {
			return next, true
		}
		current = next
	}
}

func runStages(stages []lineStage, line string) (string, bool) {
	for _, stage := range stages {
		var ok bool
		if line, ok = stage(line); !ok {
			return "", false
		}
	}
	return line, true
}

func trimLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	return line, line != ""
}

func skipStructural(line string) (string, bool) {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "***") {
		return "", false
	}
	return line, true
}

func stripOrdinal(line string) (string, bool) {
	line = leadingDigitOrdinal.ReplaceAllString(line, "")
	line = leadingLetterOrdinal.ReplaceAllString(line, "")
	return line, true
}

func (f *DisplayFilter) dropDirection(line string) (string, bool) {
	if f.removeLine != nil && f.removeLine.MatchString(line) {
		return "", false
	}
	return line, true
}

func skipWrapped(line string) (string, bool) {
	if wrappedBy(line, '[', ']') || wrappedBy(line, '(', ')') {
		return "", false
	}
	return line, true
}

// wrappedBy reports whether the opener at the start of line is closed by the
// final byte, so "[a] and [b]" is not considered wrapped.
func wrappedBy(line string, open, close byte) bool {
	if len(line) < 2 || line[0] != open || line[len(line)-1] != close {
		return false
	}
	depth := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i == len(line)-1
			}
		}
	}
	return false
}

func removeAsides(line string) (string, bool) {
	line = squareAside.ReplaceAllString(line, "")
	line = roundAside.ReplaceAllString(line, "")
	return line, true
}

func stripMarkdown(line string) (string, bool) {
	return markdownChars.ReplaceAllString(line, ""), true
}

func stripEmoji(line string) (string, bool) {
	return emojiRunes.ReplaceAllString(line, ""), true
}

func stripTimestamps(line string) (string, bool) {
	return inlineTimestamp.ReplaceAllString(line, ""), true
}

// stripSpeakerLabel tries the keyword table first and only then the generic
// "Label: rest" shape.
func (f *DisplayFilter) stripSpeakerLabel(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if f.stripLabel != nil {
		if loc := f.stripLabel.FindStringIndex(line); loc != nil {
			return line[loc[1]:], true
		}
	}
	if rest, ok := stripGenericLabel(line); ok {
		return rest, true
	}
	return line, true
}

// stripGenericLabel treats a short alphanumeric prefix before a colon as an
// unrecognised speaker name. This also strips prefixes such as "Note:".
func stripGenericLabel(line string) (string, bool) {
	m := genericLabel.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	label := strings.TrimSpace(m[1])
	if label == "" || len(label) > maxGenericLabel {
		return "", false
	}
	lower := strings.ToLower(label)
	if strings.Contains(lower, "http") || strings.Contains(lower, "//") {
		return "", false
	}
	return m[2], true
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

func unquote(line string) (string, bool) {
	line = strings.TrimSpace(line)
	for _, pair := range quotePairs {
		if len(line) >= len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(line, pair[0]) && strings.HasSuffix(line, pair[1]) {
			line = strings.TrimSpace(line[len(pair[0]) : len(line)-len(pair[1])])
			break
		}
	}
	return line, true
}

func requireContent(line string) (string, bool) {
	content := strings.TrimSpace(punctuation.ReplaceAllString(line, ""))
	if utf8.RuneCountInString(content) < 2 {
		return "", false
	}
	return line, true
}
