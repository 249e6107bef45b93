package narration

import (
	"regexp"
	"strings"
)

// seoDelimiter recognises the line that opens the SEO block: a run of three
// or more dashes followed by the rocket marker, "SEO" or an "additional info"
// keyword. Only decoration (spaces, dashes, punctuation, symbols, emoji) may
// sit between the dashes and the keyword, so a dash used mid-sentence does
// not split the script.
var seoDelimiter = regexp.MustCompile(`(?i)-{3,}[\s\p{P}\p{S}\p{M}]*(?:🚀|\bseo\b|kelengkapan|info\s+tambahan|additional\s+info)`)

// Split is a raw script separated at the SEO delimiter. Main+SEO always
// equals the input exactly.
type Split struct {
	// Main is everything before the delimiter line.
	Main string
	// SEO starts with the delimiter line and runs to the end of the input.
	// It is empty when no delimiter was found.
	SEO string
}

// HasSEO reports whether a delimiter was found.
func (s Split) HasSEO() bool {
	return s.SEO != ""
}

// Delimiter returns the delimiter line that opened the SEO block.
func (s Split) Delimiter() string {
	line, _, _ := strings.Cut(s.SEO, "\n")
	return strings.TrimRight(line, "\r")
}

// Body returns the SEO block without its delimiter line.
func (s Split) Body() string {
	_, body, _ := strings.Cut(s.SEO, "\n")
	return body
}

// SplitSEO separates raw at the first line recognised as an SEO delimiter.
// Without a delimiter the whole input is the main script.
func SplitSEO(raw string) Split {
	offset := 0
	for {
		line := raw[offset:]
		end := strings.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if IsSEODelimiter(line) {
			return Split{Main: raw[:offset], SEO: raw[offset:]}
		}
		if end < 0 {
			return Split{Main: raw}
		}
		offset += end + 1
	}
}

// IsSEODelimiter reports whether line opens an SEO block.
func IsSEODelimiter(line string) bool {
	return seoDelimiter.MatchString(line)
}
