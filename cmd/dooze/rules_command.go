package main

import (
	"strings"

	"github.com/spf13/cobra"

	"dooze/internal/narration"
)

type rulesView struct {
	ContentType narration.ContentType `json:"contentType"`
	Display     rulesTableView        `json:"display"`
	Speech      rulesTableView        `json:"speech"`
}

type rulesTableView struct {
	RemoveLine []string `json:"removeLine"`
	StripLabel []string `json:"stripLabel"`
}

func newRulesCommand() *cobra.Command {
	var typeFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "rules",
		Short:       "Show the keyword tables the narration filters use",
		Args:        cobra.NoArgs,
		Annotations: skipConfigAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := narration.ContentTypes()
			if strings.TrimSpace(typeFlag) != "" {
				ct, err := narration.ParseContentType(typeFlag)
				if err != nil {
					return err
				}
				types = []narration.ContentType{ct}
			}

			speech := narration.SpeechRules()
			views := make([]rulesView, 0, len(types))
			for _, ct := range types {
				display := narration.DisplayRules(ct)
				views = append(views, rulesView{
					ContentType: ct,
					Display:     rulesTableView{RemoveLine: display.RemoveLine, StripLabel: display.StripLabel},
					Speech:      rulesTableView{RemoveLine: speech.RemoveLine, StripLabel: speech.StripLabel},
				})
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}

			columns := []tableColumn{
				{Header: "Content type"},
				{Header: "Filter"},
				{Header: "Rule"},
				{Header: "Keywords", MaxWidth: 72},
			}
			var rows [][]string
			for _, view := range views {
				name := view.ContentType.String()
				rows = append(rows,
					[]string{name, "display", "remove line", strings.Join(view.Display.RemoveLine, ", ")},
					[]string{name, "display", "strip label", strings.Join(view.Display.StripLabel, ", ")},
					[]string{name, "speech", "remove line", strings.Join(view.Speech.RemoveLine, ", ")},
					[]string{name, "speech", "strip label", strings.Join(view.Speech.StripLabel, ", ")},
				)
			}
			printTable(cmd, columns, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Limit output to one content type")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
