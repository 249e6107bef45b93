package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dooze/internal/session"
	"dooze/internal/studio"
	"dooze/internal/textutil"
)

type sessionView struct {
	*session.Session
	Display string `json:"display"`
	Speech  string `json:"speech"`
	SEO     string `json:"seo,omitempty"`
}

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Inspect stored studio sessions",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	sessionsCmd.AddCommand(newSessionsDeleteCommand(ctx))
	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			sessions, err := handle.service.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if sessions == nil {
					sessions = []*session.Session{}
				}
				return writeJSON(cmd, sessions)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
				return nil
			}

			columns := []tableColumn{
				{Header: "ID"},
				{Header: "Type"},
				{Header: "Product"},
				{Header: "Status"},
				{Header: "Audio"},
				{Header: "Chars", Align: alignRight},
				{Header: "Updated"},
			}
			rows := make([][]string, 0, len(sessions))
			for _, sess := range sessions {
				rows = append(rows, []string{
					sess.ID,
					sess.ContentType.String(),
					textutil.Preview(sess.Brief.ProductName, 28),
					string(sess.Status),
					string(sess.AudioStatus),
					strconv.Itoa(len([]rune(sess.Script))),
					sess.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			printTable(cmd, columns, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of sessions (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session's brief, script and narration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			sess, err := handle.service.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result := studio.Narration(sess)
			if jsonOutput {
				return writeJSON(cmd, sessionView{Session: sess, Display: result.Display, Speech: result.Speech, SEO: result.SEO})
			}

			out := cmd.OutOrStdout()
			printTable(cmd, []tableColumn{{Header: "Field"}, {Header: "Value", MaxWidth: 80}}, [][]string{
				{"ID", sess.ID},
				{"Content type", sess.ContentType.String()},
				{"Language", string(sess.Language)},
				{"Platform", string(sess.Brief.Platform)},
				{"Product", sess.Brief.ProductName},
				{"Description", sess.Brief.Description},
				{"Audience", sess.Brief.TargetAudience},
				{"Tone", sess.Brief.Tone},
				{"Status", string(sess.Status)},
				{"Audio", string(sess.AudioStatus)},
				{"Voice", string(sess.Voice)},
				{"Audio file", sess.AudioPath},
				{"Error", sess.Error},
				{"Created", sess.CreatedAt.Local().Format(time.DateTime)},
				{"Updated", sess.UpdatedAt.Local().Format(time.DateTime)},
			})
			fmt.Fprintln(out)
			if !sess.HasScript() {
				fmt.Fprintln(out, "No script yet")
				return nil
			}
			printSection(out, "Display narration", result.Display)
			printSection(out, "Speech narration", result.Speech)
			if result.SEO != "" {
				printSection(out, "SEO", result.SEO)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSessionsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a session and its audio",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			if err := handle.service.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
}
