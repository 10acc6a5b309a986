// Package cli provides the project marker detection command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignorehub/ignorehub/internal/detect"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Detect templates from project markers",
	Long:  "Inspect a project directory for well-known marker files and report matching template queries.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		queries := detect.Detect(dir)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, queries)
		}

		if len(queries) == 0 {
			fmt.Println("No project markers detected")
			return nil
		}

		fmt.Println("Detected:")
		for _, query := range queries {
			fmt.Printf("  %s\n", query)
		}
		fmt.Printf("\nGenerate with: ignorehub gen --detect\n")
		return nil
	},
}
