// Package cli provides template index listing commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignorehub/ignorehub/internal/templates"
)

var (
	// list flags
	listKind    string
	listRefresh bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listKind, "kind", "", "filter by kind (language, framework, global)")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "refresh the template index first")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available templates",
	Long:    "List every template in the index, optionally filtered by kind.",
	Example: `  ignorehub list
  ignorehub list --kind language`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, cleanup := newRegistryService()
		defer cleanup()

		step := startProgress("Loading template index")
		index, err := service.LoadIndex(ctx, listRefresh)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		if listKind != "" {
			filtered := make([]templates.Template, 0, len(index))
			for _, record := range index {
				if record.Kind == templates.Kind(listKind) {
					filtered = append(filtered, record)
				}
			}
			index = filtered
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, index)
		}

		if len(index) == 0 {
			fmt.Println("No templates found")
			return nil
		}

		rows := make([][]string, 0, len(index))
		for _, record := range index {
			rows = append(rows, []string{record.Name, string(record.Kind), record.Path})
		}
		return writeTable(os.Stdout, []string{"NAME", "KIND", "PATH"}, rows)
	},
}
