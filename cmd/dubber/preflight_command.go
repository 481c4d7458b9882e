package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dubber/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check external tools and directories before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			headers := []string{"Check", "Status", "Detail"}
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))

			if !preflight.Passed(results) {
				return errors.New("one or more preflight checks failed")
			}
			return nil
		},
	}
}
