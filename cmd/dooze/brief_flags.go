package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dooze/internal/brief"
	"dooze/internal/config"
	"dooze/internal/narration"
)

// briefFlags collects the brief form fields from the command line. Content
// type and language fall back to the [generator] config defaults.
type briefFlags struct {
	contentType string
	product     string
	description string
	audience    string
	platform    string
	tone        string
	language    string
}

func (f *briefFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.contentType, "type", "t", "", "Content type (Promotion, Story, Web Showcase)")
	flags.StringVarP(&f.product, "product", "p", "", "Product or project name")
	flags.StringVarP(&f.description, "description", "d", "", "What the product is and why it matters")
	flags.StringVar(&f.audience, "audience", "", "Target audience")
	flags.StringVar(&f.platform, "platform", "", "Platform (Instagram, LinkedIn, Twitter, Email, TikTok Script, YouTube Shorts)")
	flags.StringVar(&f.tone, "tone", "", "Tone of voice")
	flags.StringVarP(&f.language, "language", "l", "", "Output language (id, en)")
}

func (f *briefFlags) build(cfg *config.Config) (brief.Brief, error) {
	b := brief.Brief{
		ProductName:    f.product,
		Description:    f.description,
		TargetAudience: f.audience,
		Tone:           f.tone,
	}

	ctValue := firstSet(f.contentType, cfg.Generator.ContentType)
	if ctValue != "" {
		ct, err := narration.ParseContentType(ctValue)
		if err != nil {
			return b, fmt.Errorf("--type: %w", err)
		}
		b.ContentType = ct
	}
	if strings.TrimSpace(f.platform) != "" {
		platform, err := brief.ParsePlatform(f.platform)
		if err != nil {
			return b, fmt.Errorf("--platform: %w", err)
		}
		b.Platform = platform
	}
	langValue := firstSet(f.language, cfg.Generator.Language)
	if langValue != "" {
		lang, err := brief.ParseLanguage(langValue)
		if err != nil {
			return b, fmt.Errorf("--language: %w", err)
		}
		b.Language = lang
	}
	return b.Normalize(), nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
