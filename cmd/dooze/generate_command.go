package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dooze/internal/logging"
	"dooze/internal/session"
	"dooze/internal/studio"
)

type generateOutput struct {
	*session.Session
	Display string `json:"display"`
	Speech  string `json:"speech"`
	SEO     string `json:"seo,omitempty"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var form briefFlags
	var videoPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a script for a brief and store it as a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			b, err := form.build(cfg)
			if err != nil {
				return err
			}

			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			if videoPath != "" {
				analysis, err := analyzeFile(cmd.Context(), handle, videoPath, b.Language)
				if err != nil {
					return err
				}
				b = analysis.ApplyTo(b)
			}
			if err := b.Validate(); err != nil {
				return err
			}

			created, err := handle.service.Create(cmd.Context(), b)
			if err != nil {
				return err
			}
			sess, err := handle.service.Generate(cmd.Context(), created.ID, b)
			if err != nil {
				var failure *studio.Failure
				if errors.As(err, &failure) {
					handle.logger.Debug("generation failure detail", logging.Error(failure.Err))
					return fmt.Errorf("%s (session %s)", failure.Message, created.ID)
				}
				return err
			}

			result := studio.Narration(sess)
			if jsonOutput {
				return writeJSON(cmd, generateOutput{Session: sess, Display: result.Display, Speech: result.Speech, SEO: result.SEO})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s (%s, %s)\n\n", sess.ID, sess.ContentType, sess.Brief.Platform)
			printSection(out, "Script", sess.Script)
			printSection(out, "Display narration", result.Display)
			if result.SEO != "" {
				printSection(out, "SEO", result.SEO)
			}
			return nil
		},
	}

	form.register(cmd)
	cmd.Flags().StringVar(&videoPath, "video", "", "Fill empty brief fields from a product video first")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
