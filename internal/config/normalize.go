package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGenerator()
	c.normalizeGemini()
	c.normalizeLLM()
	c.normalizeAudio()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		c.Paths.APIToken = lookupEnv("DOOZE_API_TOKEN")
	}
	return nil
}

func (c *Config) normalizeGenerator() {
	c.Generator.Provider = strings.ToLower(strings.TrimSpace(c.Generator.Provider))
	if c.Generator.Provider == "" {
		c.Generator.Provider = defaultProvider
	}
	c.Generator.Language = strings.TrimSpace(c.Generator.Language)
	if c.Generator.Language == "" {
		c.Generator.Language = defaultLanguage
	}
	c.Generator.ContentType = strings.TrimSpace(c.Generator.ContentType)
	if c.Generator.ContentType == "" {
		c.Generator.ContentType = defaultContentType
	}
	c.Generator.DefaultVoice = strings.TrimSpace(c.Generator.DefaultVoice)
	if c.Generator.DefaultVoice == "" {
		c.Generator.DefaultVoice = defaultVoice
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = lookupEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY")
	}
	c.Gemini.TextModel = defaultString(c.Gemini.TextModel, defaultGeminiTextModel)
	c.Gemini.VideoModel = defaultString(c.Gemini.VideoModel, defaultGeminiVideoModel)
	c.Gemini.SpeechModel = defaultString(c.Gemini.SpeechModel, defaultGeminiSpeechModel)
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = defaultGeminiTimeout
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = lookupEnv("OPENROUTER_API_KEY")
	}
	c.LLM.BaseURL = defaultString(c.LLM.BaseURL, defaultLLMBaseURL)
	c.LLM.Model = defaultString(c.LLM.Model, defaultLLMModel)
	c.LLM.Referer = defaultString(c.LLM.Referer, defaultLLMReferer)
	c.LLM.Title = defaultString(c.LLM.Title, defaultLLMTitle)
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeAudio() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = defaultChannels
	}
	if c.Audio.MaxVideoMB == 0 {
		c.Audio.MaxVideoMB = defaultMaxVideoMB
	}
	command := make([]string, 0, len(c.Audio.PlayerCommand))
	for _, part := range c.Audio.PlayerCommand {
		if part = strings.TrimSpace(part); part != "" {
			command = append(command, part)
		}
	}
	c.Audio.PlayerCommand = command
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// lookupEnv returns the first non-empty value among keys.
func lookupEnv(keys ...string) string {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
