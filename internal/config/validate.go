package config

import (
	"errors"
	"fmt"

	"dooze/internal/brief"
	"dooze/internal/narration"
)

// Validate ensures the configuration is usable. API keys are not required
// here; commands that call a model report a missing key themselves so
// offline commands keep working.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.APIBind == "" {
		return errors.New("paths.api_bind must be set")
	}
	return nil
}

func (c *Config) validateGenerator() error {
	switch c.Generator.Provider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("generator.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenRouter, c.Generator.Provider)
	}
	if _, err := brief.ParseLanguage(c.Generator.Language); err != nil {
		return fmt.Errorf("generator.language: %w", err)
	}
	if _, err := narration.ParseContentType(c.Generator.ContentType); err != nil {
		return fmt.Errorf("generator.content_type: %w", err)
	}
	if _, err := brief.ParseVoice(c.Generator.DefaultVoice); err != nil {
		return fmt.Errorf("generator.default_voice: %w", err)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.Gemini.TimeoutSeconds < 0 {
		return errors.New("gemini.timeout_seconds must be positive")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate must be between 8000 and 192000, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("audio.channels must be 1 or 2, got %d", c.Audio.Channels)
	}
	if c.Audio.MaxVideoMB < 0 {
		return errors.New("audio.max_video_mb must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
