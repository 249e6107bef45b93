package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"dooze/internal/brief"
	"dooze/internal/config"
	"dooze/internal/logging"
	"dooze/internal/services/gemini"
	"dooze/internal/services/llm"
	"dooze/internal/session"
	"dooze/internal/studio"
)

var skipConfigAnnotation = map[string]string{"skipConfigLoad": "true"}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// collaborators holds the model clients selected by config. Fields stay nil
// when the matching API key is missing.
type collaborators struct {
	generator   studio.ScriptGenerator
	analyzer    studio.VideoAnalyzer
	synthesizer studio.SpeechSynthesizer
}

func buildCollaborators(ctx context.Context, cfg *config.Config, logger *slog.Logger) (collaborators, error) {
	var out collaborators
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(ctx, geminiConfig(cfg), gemini.WithLogger(logger))
		if err != nil {
			return out, err
		}
		out.analyzer = client
		out.synthesizer = client
		if cfg.Generator.Provider == config.ProviderGemini {
			out.generator = client
		}
	}
	if cfg.Generator.Provider == config.ProviderOpenRouter {
		out.generator = llm.NewClient(llm.ConfigFrom(cfg.GetLLM()), llm.WithLogger(logger))
	}
	return out, nil
}

func geminiConfig(cfg *config.Config) gemini.Config {
	return gemini.Config{
		APIKey:         cfg.Gemini.APIKey,
		TextModel:      cfg.Gemini.TextModel,
		VideoModel:     cfg.Gemini.VideoModel,
		SpeechModel:    cfg.Gemini.SpeechModel,
		TimeoutSeconds: cfg.Gemini.TimeoutSeconds,
	}
}

// studioHandle bundles a studio service with the store it owns.
type studioHandle struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *session.Store
	service *studio.Service
	collab  collaborators
}

func (h *studioHandle) Close() error {
	if h == nil || h.store == nil {
		return nil
	}
	return h.store.Close()
}

func (c *commandContext) openStudio(ctx context.Context, events studio.Publisher) (*studioHandle, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	collab, err := buildCollaborators(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store, err := session.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	svc := studio.New(studio.Dependencies{
		Store:        store,
		Generator:    collab.generator,
		Analyzer:     collab.analyzer,
		Synthesizer:  collab.synthesizer,
		AudioDir:     cfg.AudioDir(),
		DefaultVoice: brief.Voice(cfg.Generator.DefaultVoice),
		Events:       events,
		Logger:       logger,
	})
	return &studioHandle{cfg: cfg, logger: logger, store: store, service: svc, collab: collab}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
