package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dooze/internal/narration"
)

func newNarrateCommand() *cobra.Command {
	var typeFlag string
	var modeFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "narrate [file]",
		Short:       "Clean a script into display and speech narration",
		Long:        "Reads a generated script from a file or stdin and prints the display narration, the speech narration, the SEO block, or all three.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: skipConfigAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := narration.ParseContentType(typeFlag)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			result := narration.Process(raw, ct)
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(modeFlag)) {
			case "display":
				fmt.Fprintln(out, result.Display)
			case "speech":
				fmt.Fprintln(out, result.Speech)
			case "seo":
				fmt.Fprint(out, result.SEO)
			case "all":
				printSection(out, "Display narration", result.Display)
				printSection(out, "Speech narration", result.Speech)
				printSection(out, "SEO", result.SEO)
			default:
				return fmt.Errorf("unknown mode %q (use display, speech, seo or all)", modeFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", string(narration.Promotion), "Content type (Promotion, Story, Web Showcase)")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "display", "Output: display, speech, seo or all")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
