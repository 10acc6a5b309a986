// Package cli provides the template index refresh command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"refresh"},
	Short:   "Refresh the cached template index",
	Long:    "Fetch the template index from the source repository and replace the local cache.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, cleanup := newRegistryService()
		defer cleanup()

		step := startProgress("Refreshing template index")
		index, err := service.LoadIndex(ctx, true)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"refreshed": true,
				"templates": len(index),
			})
		}

		fmt.Printf("Template index refreshed (%d templates)\n", len(index))
		return nil
	},
}
