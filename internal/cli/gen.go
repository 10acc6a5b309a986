// Package cli provides the gitignore generation command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignorehub/ignorehub/internal/detect"
	"github.com/ignorehub/ignorehub/internal/merge"
	"github.com/ignorehub/ignorehub/internal/registry"
	"github.com/ignorehub/ignorehub/internal/templates"
)

var (
	// gen flags
	genOutput  string
	genPrint   bool
	genPlain   bool
	genDetect  bool
	genRefresh bool
)

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default from config, usually .gitignore)")
	genCmd.Flags().BoolVar(&genPrint, "print", false, "print to stdout instead of writing the file")
	genCmd.Flags().BoolVar(&genPlain, "plain", false, "plain mode: simple section headers, no sentinel watermark")
	genCmd.Flags().BoolVar(&genDetect, "detect", false, "add templates detected from project markers")
	genCmd.Flags().BoolVar(&genRefresh, "refresh", false, "refresh the template index before generating")
}

var genCmd = &cobra.Command{
	Use:     "gen [templates...]",
	Aliases: []string{"generate"},
	Short:   "Generate or update a .gitignore",
	Long: `Generate a .gitignore by merging the requested templates.

Existing content outside the generated block is preserved, and rules
already present are not written again. Re-running with the same templates
leaves the file unchanged.

Note: without --plain the generated block is wrapped in sentinel lines;
in plain mode the block cannot be replaced on a later run, only appended
to with deduplicated rules.`,
	Example: `  # Generate for Node and Python
  ignorehub gen node python

  # Auto-detect templates from project markers
  ignorehub gen --detect

  # Preview without touching the file
  ignorehub gen go --print`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		queries := append([]string{}, args...)
		if genDetect {
			detected := detect.Detect(".")
			logger.Debug().Strs("queries", detected).Msg("project markers detected")
			queries = append(queries, detected...)
		}
		if len(queries) == 0 {
			return &PreflightError{
				Message:  "no templates requested",
				Hint:     "pass template names, or use --detect in a project directory",
				NextStep: "ignorehub list",
			}
		}

		service, cleanup := newRegistryService()
		defer cleanup()

		step := startProgress("Loading template index")
		index, err := service.LoadIndex(ctx, genRefresh)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		resolution := newResolver().ResolveAll(queries, index)
		if len(resolution.Issues) > 0 {
			return reportIssues(resolution.Issues)
		}
		if len(resolution.Selected) == 0 {
			return fmt.Errorf("no templates selected")
		}

		cfg := GetConfig()
		plain := cfg.Plain
		if cmd.Flags().Changed("plain") {
			plain = genPlain
		}
		output := cfg.Output
		if genOutput != "" {
			output = genOutput
		}

		return runGenerate(ctx, service, resolution.Selected, output, plain, genPrint)
	},
}

// runGenerate fetches template bodies and merges them into the output
// file. Shared by gen and the interactive picker.
func runGenerate(ctx context.Context, service *registry.Service, records []templates.Template, output string, plain, print bool) error {
	step := startProgress("Fetching templates")
	fetched, failures := service.FetchTemplates(ctx, records)
	if len(failures) > 0 {
		step.Fail(fmt.Errorf("%d of %d templates failed", len(failures), len(records)))
		for _, failure := range failures {
			logger.Warn().Err(failure.Err).Str("template", failure.Template.ID).Msg("template body fetch failed")
		}
	} else {
		step.Done()
	}
	if len(fetched) == 0 {
		return fmt.Errorf("no template bodies could be fetched")
	}

	existing, err := readExisting(output)
	if err != nil {
		return err
	}

	content := merge.Merge(merge.Input{
		ExistingContent: existing,
		Templates:       fetched,
		Options: merge.Options{
			IncludeWatermark:          !plain,
			UseSimpleSectionSeparator: plain,
		},
	})

	if print {
		fmt.Print(content)
		return nil
	}

	if err := os.WriteFile(output, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if IsJSONOutput() || IsJSONLOutput() {
		written := make([]string, 0, len(fetched))
		for _, tmpl := range fetched {
			written = append(written, tmpl.Meta.ID)
		}
		failed := make([]string, 0, len(failures))
		for _, failure := range failures {
			failed = append(failed, failure.Template.ID)
		}
		return WriteOutput(os.Stdout, map[string]any{
			"output":    output,
			"templates": written,
			"failed":    failed,
		})
	}

	fmt.Printf("Wrote %s (%d sections)\n", output, len(fetched))
	if len(failures) > 0 {
		fmt.Printf("Skipped %d templates that failed to fetch\n", len(failures))
	}
	return nil
}

func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
