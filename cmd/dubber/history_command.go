package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dubber/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed dub runs",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded dubs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dubs recorded yet.")
				return nil
			}

			headers := []string{"ID", "When", "From", "To", "Source", "Artifact"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.SourceLang,
					entry.TargetLang,
					entry.Source,
					entry.ArtifactPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignRight}))
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(clearCmd)
	return historyCmd
}
