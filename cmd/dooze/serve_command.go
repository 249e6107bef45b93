package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"dooze/internal/api"
	"dooze/internal/logging"
	"dooze/internal/studio"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(bindFlag) != "" {
				cfg.Paths.APIBind = strings.TrimSpace(bindFlag)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !logger.Enabled(cmd.Context(), slog.LevelDebug) {
				gin.SetMode(gin.ReleaseMode)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			broker := studio.NewBroker()
			handle, err := ctx.openStudio(signalCtx, broker)
			if err != nil {
				return err
			}
			defer handle.Close()

			server, err := api.New(api.Options{
				Config: cfg,
				Studio: handle.service,
				Events: broker,
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("create api server: %w", err)
			}
			if cfg.Paths.APIToken == "" {
				logger.Warn("api token not set; the API accepts unauthenticated requests",
					logging.String("bind", cfg.Paths.APIBind))
			}
			return server.Run(signalCtx)
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override paths.api_bind")
	return cmd
}
