package narration

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ContentType selects the keyword table that augments the base rules.
type ContentType string

const (
	Promotion   ContentType = "Promotion"
	Story       ContentType = "Story"
	WebShowcase ContentType = "Web Showcase"
)

var contentTypeAliases = map[string]ContentType{
	"promotion":    Promotion,
	"promo":        Promotion,
	"promosi":      Promotion,
	"story":        Story,
	"cerita":       Story,
	"storytelling": Story,
	"webshowcase":  WebShowcase,
	"web":          WebShowcase,
	"showcase":     WebShowcase,
}

// ContentTypes lists the supported content types in display order.
func ContentTypes() []ContentType {
	return []ContentType{Promotion, Story, WebShowcase}
}

// Valid reports whether c is one of the supported content types.
func (c ContentType) Valid() bool {
	switch c {
	case Promotion, Story, WebShowcase:
		return true
	default:
		return false
	}
}

func (c ContentType) String() string {
	return string(c)
}

// ParseContentType accepts the canonical names plus common spellings such as
// "web-showcase", "WEB_SHOWCASE" or "promo".
func ParseContentType(value string) (ContentType, error) {
	key := cases.Fold().String(strings.TrimSpace(value))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	if key == "" {
		return "", fmt.Errorf("content type is empty")
	}
	if ct, ok := contentTypeAliases[key]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("unknown content type %q", value)
}
