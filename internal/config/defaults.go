package config

const (
	defaultConfigPath        = "~/.config/dooze/config.toml"
	defaultDataDir           = "~/.local/share/dooze"
	defaultLogDir            = "~/.local/share/dooze/logs"
	defaultAPIBind           = "127.0.0.1:7490"
	defaultProvider          = ProviderGemini
	defaultLanguage          = "id"
	defaultContentType       = "Promotion"
	defaultVoice             = "Kore"
	defaultGeminiTextModel   = "gemini-3-flash-preview"
	defaultGeminiVideoModel  = "gemini-3-pro-preview"
	defaultGeminiSpeechModel = "gemini-2.5-flash-preview-tts"
	defaultGeminiTimeout     = 120
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://dooze.ai"
	defaultLLMTitle          = "Dooze.AI"
	defaultLLMTimeoutSeconds = 90
	defaultSampleRate        = 24000
	defaultChannels          = 1
	defaultMaxVideoMB        = 20
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Supported generator providers.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Generator: Generator{
			Provider:     defaultProvider,
			Language:     defaultLanguage,
			ContentType:  defaultContentType,
			DefaultVoice: defaultVoice,
		},
		Gemini: Gemini{
			TextModel:      defaultGeminiTextModel,
			VideoModel:     defaultGeminiVideoModel,
			SpeechModel:    defaultGeminiSpeechModel,
			TimeoutSeconds: defaultGeminiTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Audio: Audio{
			SampleRate:    defaultSampleRate,
			Channels:      defaultChannels,
			PlayerCommand: []string{"aplay", "-q", "-"},
			MaxVideoMB:    defaultMaxVideoMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
