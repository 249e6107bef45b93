package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/logging"
	"dooze/internal/services"
	"dooze/internal/services/llm"
)

const (
	defaultTimeout    = 90 * time.Second
	scriptTemperature = 0.8
	jsonMIMEType      = "application/json"
	audioModality     = "AUDIO"
)

// Config captures the Gemini API settings.
type Config struct {
	APIKey         string
	TextModel      string
	VideoModel     string
	SpeechModel    string
	TimeoutSeconds int
}

// contentGenerator is the slice of the SDK the client uses; *genai.Models
// satisfies it.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client issues script, video and speech requests.
type Client struct {
	cfg     Config
	models  contentGenerator
	timeout time.Duration
	logger  *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithLogger attaches a logger for request summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func withModels(models contentGenerator) Option {
	return func(c *Client) {
		c.models = models
	}
}

// New builds a client backed by the Gemini API.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "api key required", nil)
	}
	client := newClient(cfg, opts...)
	if client.models == nil {
		sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "", err)
		}
		client.models = sdk.Models
	}
	return client, nil
}

func newClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:     cfg,
		timeout: timeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GenerateScript renders the prompt for b and returns the text model's script.
func (c *Client) GenerateScript(ctx context.Context, b brief.Brief) (string, error) {
	prompt := brief.BuildPrompt(b.Normalize())
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}},
		Temperature:       genai.Ptr[float32](scriptTemperature),
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)}
	resp, err := c.generate(ctx, "generate script", c.cfg.TextModel, contents, config)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", services.Wrap(services.ErrExternalService, "gemini", "generate script", "empty response", nil)
	}
	return text, nil
}

// HealthCheck sends a one-word prompt to the text model to verify the key
// and model name.
func (c *Client) HealthCheck(ctx context.Context) error {
	contents := []*genai.Content{genai.NewContentFromText("Reply with OK.", genai.RoleUser)}
	resp, err := c.generate(ctx, "health", c.cfg.TextModel, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return err
	}
	if strings.TrimSpace(resp.Text()) == "" {
		return services.Wrap(services.ErrExternalService, "gemini", "health", "empty response", nil)
	}
	return nil
}

// AnalyzeVideo asks the video model to describe the clip as brief fields.
func (c *Client) AnalyzeVideo(ctx context.Context, data []byte, mimeType string, lang brief.Language) (brief.VideoAnalysis, error) {
	var analysis brief.VideoAnalysis
	if len(data) == 0 {
		return analysis, services.Wrap(services.ErrValidation, "gemini", "analyze video", "video is empty", nil)
	}
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "video/") {
		return analysis, services.Wrap(services.ErrValidation, "gemini", "analyze video", "unsupported mime type "+strconv.Quote(mimeType), nil)
	}
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
			{Text: brief.VideoAnalysisPrompt(lang)},
		},
	}}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   videoAnalysisSchema(),
	}
	resp, err := c.generate(ctx, "analyze video", c.cfg.VideoModel, contents, config)
	if err != nil {
		return analysis, err
	}
	if err := llm.DecodeJSON(resp.Text(), &analysis); err != nil {
		return analysis, services.Wrap(services.ErrExternalService, "gemini", "analyze video", "parse payload", err)
	}
	return analysis, nil
}

func videoAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"productName": {
				Type:        genai.TypeString,
				Description: "Project or product name",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "Key features, tech stack or plot",
			},
			"targetAudience": {
				Type:        genai.TypeString,
				Description: "Who the content is for",
			},
		},
		Required: []string{"productName", "description", "targetAudience"},
	}
}

// Synthesize reads text aloud with the named prebuilt voice and returns the
// raw PCM clip.
func (c *Client) Synthesize(ctx context.Context, text string, voice brief.Voice) (audio.Clip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return audio.Clip{}, services.Wrap(services.ErrValidation, "gemini", "synthesize", "text is empty", nil)
	}
	if voice == "" {
		voice = brief.DefaultVoice
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{audioModality},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: string(voice)},
			},
		},
	}
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	resp, err := c.generate(ctx, "synthesize", c.cfg.SpeechModel, contents, config)
	if err != nil {
		return audio.Clip{}, err
	}
	blob := firstInlineData(resp)
	if blob == nil || len(blob.Data) == 0 {
		return audio.Clip{}, services.Wrap(services.ErrExternalService, "gemini", "synthesize", "no audio data in response", nil)
	}
	format := audio.DefaultFormat()
	format.SampleRate = SampleRateFromMIME(blob.MIMEType, format.SampleRate)
	return audio.Clip{Format: format, Data: blob.Data}, nil
}

func (c *Client) generate(ctx context.Context, op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.models == nil {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", op, "client not initialized", nil)
	}
	if strings.TrimSpace(model) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", op, "model not configured", nil)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.models.GenerateContent(callCtx, model, contents, config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "gemini", op, model, err)
		}
		return nil, services.Wrap(services.ErrExternalService, "gemini", op, model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, services.Wrap(services.ErrExternalService, "gemini", op, "no candidates", nil)
	}
	c.logger.Info("gemini request",
		logging.Model(model),
		logging.String("op", op),
		logging.Duration("elapsed", time.Since(started)),
	)
	return resp, nil
}

func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}

// SampleRateFromMIME reads the rate parameter of an audio MIME type such as
// "audio/L16;codec=pcm;rate=24000", returning fallback when absent.
func SampleRateFromMIME(mimeType string, fallback int) int {
	for _, param := range strings.Split(mimeType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rate") {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil && rate > 0 {
			return rate
		}
	}
	return fallback
}
