package config

import "strings"

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Generator selects the script generation backend and studio defaults.
type Generator struct {
	Provider     string `toml:"provider"`
	Language     string `toml:"language"`
	ContentType  string `toml:"content_type"`
	DefaultVoice string `toml:"default_voice"`
}

// Gemini contains settings for the Gemini API (text, video and speech models).
type Gemini struct {
	APIKey         string `toml:"api_key"`
	TextModel      string `toml:"text_model"`
	VideoModel     string `toml:"video_model"`
	SpeechModel    string `toml:"speech_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LLM contains OpenRouter-compatible chat completion settings, used when
// generator.provider is "openrouter".
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Audio contains speech output and playback settings.
type Audio struct {
	SampleRate    int      `toml:"sample_rate"`
	Channels      int      `toml:"channels"`
	PlayerCommand []string `toml:"player_command"`
	MaxVideoMB    int      `toml:"max_video_mb"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for dooze.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - Generator: provider selection, default language, content type and voice
//   - Gemini: Gemini API key and models
//   - LLM: OpenRouter-compatible chat completions
//   - Audio: WAV format, playback command, upload limits
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Generator Generator `toml:"generator"`
	Gemini    Gemini    `toml:"gemini"`
	LLM       LLM       `toml:"llm"`
	Audio     Audio     `toml:"audio"`
	Logging   Logging   `toml:"logging"`
}

// LLMConfig is the trimmed [llm] section handed to the chat client.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the chat completion connection settings.
func (c *Config) GetLLM() LLMConfig {
	l := c.LLM
	return LLMConfig{
		APIKey:         strings.TrimSpace(l.APIKey),
		BaseURL:        strings.TrimSpace(l.BaseURL),
		Model:          strings.TrimSpace(l.Model),
		Referer:        strings.TrimSpace(l.Referer),
		Title:          strings.TrimSpace(l.Title),
		TimeoutSeconds: l.TimeoutSeconds,
	}
}
