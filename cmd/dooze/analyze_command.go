package main

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dooze/internal/brief"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Extract product name, description and audience from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lang, err := brief.ParseLanguage(firstSet(languageFlag, cfg.Generator.Language))
			if err != nil {
				return fmt.Errorf("--language: %w", err)
			}

			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			analysis, err := analyzeFile(cmd.Context(), handle, args[0], lang)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, analysis)
			}
			printTable(cmd, []tableColumn{{Header: "Field"}, {Header: "Value", MaxWidth: 80}}, [][]string{
				{"Product", analysis.ProductName},
				{"Description", analysis.Description},
				{"Audience", analysis.TargetAudience},
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language of the extracted fields (id, en)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func analyzeFile(ctx context.Context, handle *studioHandle, path string, lang brief.Language) (brief.VideoAnalysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		return brief.VideoAnalysis{}, fmt.Errorf("inspect video: %w", err)
	}
	if limit := handle.cfg.MaxVideoBytes(); limit > 0 && info.Size() > limit {
		return brief.VideoAnalysis{}, fmt.Errorf("video is %d MB; the limit is %d MB (audio.max_video_mb)", info.Size()>>20, limit>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return brief.VideoAnalysis{}, fmt.Errorf("read video: %w", err)
	}
	return handle.service.Analyze(ctx, data, videoMIMEType(path, data), lang)
}

func videoMIMEType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if parsed, _, err := mime.ParseMediaType(byExt); err == nil {
			return parsed
		}
	}
	return http.DetectContentType(data)
}
