// Package cli provides the template query search command.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignorehub/ignorehub/internal/templates"
)

var searchRefresh bool

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&searchRefresh, "refresh", false, "refresh the template index first")
}

type searchResult struct {
	Query    string              `json:"query"`
	Template *templates.Template `json:"template,omitempty"`
	Issue    *templates.Issue    `json:"issue,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Resolve template queries",
	Long: `Resolve free-text template queries the same way gen does, showing
which template each query maps to, or why it fails.`,
	Example: `  ignorehub search js
  ignorehub search ja`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		service, cleanup := newRegistryService()
		defer cleanup()

		step := startProgress("Loading template index")
		index, err := service.LoadIndex(ctx, searchRefresh)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		resolver := newResolver()

		results := make([]searchResult, 0, len(args))
		var issues []templates.Issue
		for _, raw := range args {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			record, issue := resolver.Resolve(raw, index)
			if issue != nil {
				issues = append(issues, *issue)
				results = append(results, searchResult{Query: raw, Issue: issue})
				continue
			}
			results = append(results, searchResult{Query: raw, Template: &record})
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(os.Stdout, results); err != nil {
				return err
			}
		} else {
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				if result.Template == nil {
					continue
				}
				rows = append(rows, []string{
					result.Query,
					result.Template.Name,
					string(result.Template.Kind),
					result.Template.Path,
				})
			}
			if len(rows) > 0 {
				if err := writeTable(os.Stdout, []string{"QUERY", "TEMPLATE", "KIND", "PATH"}, rows); err != nil {
					return err
				}
			}
		}

		if len(issues) > 0 {
			return reportIssues(issues)
		}
		return nil
	},
}
