package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/flock"

	"dooze/internal/config"
	"dooze/internal/logging"
	"dooze/internal/studio"
)

const shutdownTimeout = 5 * time.Second

// ErrAlreadyRunning reports that another server holds the lock file.
var ErrAlreadyRunning = errors.New("dooze server already running")

// Options wires a Server.
type Options struct {
	Config *config.Config
	Studio *studio.Service
	Events *studio.Broker
	Logger *slog.Logger
}

// Server serves the studio API.
type Server struct {
	bind     string
	token    string
	maxVideo int64
	lockPath string

	studio *studio.Service
	events *studio.Broker
	logger *slog.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers every route.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("api: config required")
	}
	if opts.Studio == nil {
		return nil, errors.New("api: studio service required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	events := opts.Events
	if events == nil {
		events = studio.NewBroker()
	}
	cfg := opts.Config
	s := &Server{
		bind:     strings.TrimSpace(cfg.Paths.APIBind),
		token:    strings.TrimSpace(cfg.Paths.APIToken),
		maxVideo: cfg.MaxVideoBytes(),
		lockPath: cfg.LockPath(),
		studio:   opts.Studio,
		events:   events,
		logger:   logging.NewComponentLogger(logger, "api"),
	}
	s.engine = s.routes()
	return s, nil
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestContext(s.logger))
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "route not found"})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method_not_allowed", Message: "method not allowed"})
	})

	engine.GET("/healthz", s.handleHealth)

	apiGroup := engine.Group("/api", authMiddleware(s.token))
	apiGroup.POST("/narration", s.handleNarration)
	apiGroup.GET("/rules", s.handleRules)
	apiGroup.POST("/analyze", s.handleAnalyze)

	sessions := apiGroup.Group("/sessions")
	sessions.POST("", s.handleCreateSession)
	sessions.GET("", s.handleListSessions)
	sessions.GET("/:id", s.handleGetSession)
	sessions.DELETE("/:id", s.handleDeleteSession)
	sessions.POST("/:id/generate", s.handleGenerate)
	sessions.PUT("/:id/script", s.handleUpdateScript)
	sessions.GET("/:id/narration", s.handleSessionNarration)
	sessions.POST("/:id/speech", s.handleSpeech)
	sessions.GET("/:id/audio", s.handleAudio)
	sessions.GET("/:id/events", s.handleEvents)
	return engine
}

// Run acquires the single-instance lock, serves until ctx is cancelled and
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api: paths.api_bind is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return fmt.Errorf("api: ensure lock dir: %w", err)
	}
	lock := flock.New(s.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, s.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release server lock", logging.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Request contexts end with ctx so hijacked websocket streams stop too.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.Bool("auth", s.token != ""),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
