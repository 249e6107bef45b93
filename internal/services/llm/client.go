package llm

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dooze/internal/brief"
	"dooze/internal/config"
	"dooze/internal/logging"
	"dooze/internal/services"
)

const (
	// DefaultEndpoint is the OpenRouter chat completions URL.
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 60 * time.Second

	scriptTemperature = 0.8
	component         = "llm"
)

// Config captures the runtime settings required to talk to the chat endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// ConfigFrom maps the [llm] section of the application config.
func ConfigFrom(c config.LLMConfig) Config {
	return Config(c)
}

// Client talks to an OpenRouter-compatible chat completion endpoint. Every
// call is a single attempt.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger attaches a logger for request summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// NewClient constructs a chat client. A blank BaseURL selects DefaultEndpoint.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Referer = strings.TrimSpace(cfg.Referer)
	cfg.Title = strings.TrimSpace(cfg.Title)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEndpoint
	}
	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// GenerateScript renders the prompt for b and returns the generated script.
func (c *Client) GenerateScript(ctx context.Context, b brief.Brief) (string, error) {
	prompt := brief.BuildPrompt(b.Normalize())
	return c.Complete(ctx, prompt.System, prompt.User)
}

// Complete issues a free-text completion and returns the model output.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	req, err := c.newRequest("complete", system, user)
	if err != nil {
		return "", err
	}
	temp := scriptTemperature
	req.Temperature = &temp
	return c.run(ctx, "complete", req)
}

// CompleteJSON asks for a JSON object and returns the raw payload.
func (c *Client) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	req, err := c.newRequest("complete json", system, user)
	if err != nil {
		return "", err
	}
	req.ResponseFormat = &responseFormat{Type: "json_object"}
	return c.run(ctx, "complete json", req)
}

// HealthCheck sends a tiny JSON request to prove the key and model work.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.CompleteJSON(ctx, "You must respond with JSON only.", `Respond with {"ok":true}`)
	if err != nil {
		return err
	}
	var reply struct {
		OK bool `json:"ok"`
	}
	if err := DecodeJSON(content, &reply); err != nil {
		return services.Wrap(services.ErrExternalService, component, "health", "parse payload", err)
	}
	if !reply.OK {
		return services.Wrap(services.ErrExternalService, component, "health", "unexpected response", nil)
	}
	return nil
}

func (c *Client) newRequest(op, system, user string) (chatRequest, error) {
	system = strings.TrimSpace(system)
	user = strings.TrimSpace(user)
	switch {
	case system == "":
		return chatRequest{}, services.Wrap(services.ErrValidation, component, op, "system prompt required", nil)
	case user == "":
		return chatRequest{}, services.Wrap(services.ErrValidation, component, op, "user prompt required", nil)
	case c.cfg.APIKey == "":
		return chatRequest{}, services.Wrap(services.ErrConfiguration, component, op, "api key required", nil)
	}
	return chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}, nil
}

func (c *Client) run(ctx context.Context, op string, req chatRequest) (string, error) {
	started := time.Now()
	resp, raw, err := c.post(ctx, req)
	if err != nil {
		return "", classify(op, err)
	}
	content, finish := resp.content()
	if content == "" {
		if len(resp.Choices) == 0 {
			return "", services.Wrap(services.ErrExternalService, component, op, "empty choices", nil)
		}
		return "", services.Wrap(services.ErrExternalService, component, op, "", &emptyContentError{
			FinishReason: finish,
			Refusal:      resp.refusal(),
			Snippet:      SummarizeSnippet(string(raw)),
		})
	}
	c.logger.Info("completion received",
		logging.Model(req.Model),
		logging.String("op", op),
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("response_bytes", len(raw)),
	)
	c.logger.Debug("completion content", logging.String("snippet", SummarizeSnippet(content)))
	return content, nil
}
