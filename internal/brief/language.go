package brief

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is the output language of generated content.
type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
)

var languageNames = map[string]Language{
	"indonesian": Indonesian,
	"indonesia":  Indonesian,
	"bahasa":     Indonesian,
	"english":    English,
	"inggris":    English,
}

// ParseLanguage accepts BCP 47 tags ("id", "en-US", "in") and plain names.
// An empty value yields Indonesian.
func ParseLanguage(value string) (Language, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Indonesian, nil
	}
	if lang, ok := languageNames[cases.Fold().String(trimmed)]; ok {
		return lang, nil
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("unknown language %q", value)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "id", "in", "ms":
		return Indonesian, nil
	case "en":
		return English, nil
	default:
		return "", fmt.Errorf("unsupported language %q", value)
	}
}

// Valid reports whether l is a supported output language.
func (l Language) Valid() bool {
	return l == Indonesian || l == English
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Indonesian
}

// PromptName is the upper-case language name used inside prompts.
func (l Language) PromptName() string {
	if l == English {
		return "ENGLISH"
	}
	return "BAHASA INDONESIA"
}

// Adjective is the language name as used in "natural Indonesian".
func (l Language) Adjective() string {
	if l == English {
		return "English"
	}
	return "Indonesian"
}
