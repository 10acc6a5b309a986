// Package cli provides the interactive picker launch command.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignorehub/ignorehub/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Pick templates interactively",
	Long:  "Launch the interactive template picker, then generate a .gitignore from the selection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

func runWizard() error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "the template picker requires an interactive terminal",
			Hint:     "run without --non-interactive and with a TTY, or pass template names to gen",
			NextStep: "ignorehub gen --help",
		}
	}

	ctx := context.Background()

	service, cleanup := newRegistryService()
	defer cleanup()

	step := startProgress("Loading template index")
	index, err := service.LoadIndex(ctx, false)
	if err != nil {
		step.Fail(err)
		return err
	}
	step.Done()

	cfg := GetConfig()
	selected, confirmed, err := tui.RunPicker(tui.Config{
		Templates: index,
		Theme:     cfg.Theme,
	})
	if err != nil {
		return err
	}
	if !confirmed || len(selected) == 0 {
		fmt.Println("No templates selected")
		return nil
	}

	return runGenerate(ctx, service, selected, cfg.Output, cfg.Plain, false)
}
