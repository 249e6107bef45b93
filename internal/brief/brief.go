package brief

import (
	"fmt"
	"strings"

	"dooze/internal/narration"
	"dooze/internal/services"
)

// Brief is the structured request a script is generated from.
type Brief struct {
	ContentType    narration.ContentType `json:"contentType"`
	ProductName    string                `json:"productName"`
	Description    string                `json:"description"`
	TargetAudience string                `json:"targetAudience"`
	Platform       Platform              `json:"platform"`
	Tone           string                `json:"tone"`
	Language       Language              `json:"language"`
}

// Normalize trims every field and fills the defaults a fresh form starts
// with: Promotion, Instagram, Indonesian and the content type's first tone.
func (b Brief) Normalize() Brief {
	b.ProductName = strings.TrimSpace(b.ProductName)
	b.Description = strings.TrimSpace(b.Description)
	b.TargetAudience = strings.TrimSpace(b.TargetAudience)
	b.Tone = strings.TrimSpace(b.Tone)
	if b.ContentType == "" {
		b.ContentType = narration.Promotion
	}
	if b.Platform == "" {
		b.Platform = Instagram
	}
	if b.Language == "" {
		b.Language = Indonesian
	}
	if b.Tone == "" {
		b.Tone = DefaultTone(b.ContentType)
	}
	return b
}

// Validate reports the first missing or unsupported field.
func (b Brief) Validate() error {
	switch {
	case !b.ContentType.Valid():
		return invalidf("unsupported content type %q", b.ContentType)
	case !validPlatform(b.Platform):
		return invalidf("unsupported platform %q", b.Platform)
	case !b.Language.Valid():
		return invalidf("unsupported language %q", b.Language)
	case b.ProductName == "":
		return invalidf("product name is required")
	case b.Description == "":
		return invalidf("description is required")
	}
	return nil
}

func validPlatform(p Platform) bool {
	for _, candidate := range Platforms() {
		if candidate == p {
			return true
		}
	}
	return false
}

func invalidf(format string, args ...any) error {
	return services.Wrap(services.ErrValidation, "brief", "validate", fmt.Sprintf(format, args...), nil)
}
