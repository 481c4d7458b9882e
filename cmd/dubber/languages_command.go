package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dubber/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List supported target languages and their default voices",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"Tag", "Language", "Native name", "Default voice"}
			var rows [][]string
			for _, info := range language.All() {
				rows = append(rows, []string{info.Tag, info.Display, info.Native, info.Voice})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}
}
