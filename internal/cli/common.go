// Package cli provides shared wiring for ignorehub commands.
package cli

import (
	"fmt"
	"os"

	"github.com/ignorehub/ignorehub/internal/db"
	"github.com/ignorehub/ignorehub/internal/registry"
	"github.com/ignorehub/ignorehub/internal/templates"
)

// newRegistryService wires the remote client with the local index cache.
// A broken cache degrades to uncached operation rather than failing the
// command.
func newRegistryService() (*registry.Service, func()) {
	cfg := GetConfig()
	client := registry.NewClient(cfg.Source.Owner, cfg.Source.Repo, cfg.Source.Ref)

	database, err := db.Open(cfg.Cache.Path, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("template cache unavailable; continuing without it")
		return registry.NewService(client, nil, 0, logger), func() {}
	}

	repo := db.NewTemplateRepository(database)
	return registry.NewService(client, repo, cfg.Cache.TTL, logger), func() { database.Close() }
}

// newResolver builds the query resolver with the user alias overlay
// applied. An invalid overlay file is skipped with a warning.
func newResolver() *templates.Resolver {
	overlay, err := templates.LoadAliases(GetConfig().AliasesPath())
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring invalid alias overlay")
		overlay = nil
	}
	return templates.NewResolver(overlay)
}

// reportIssues prints every resolution issue and returns the batch error.
// Per the all-or-nothing contract, any issue fails the whole batch.
func reportIssues(issues []templates.Issue) error {
	for _, issue := range issues {
		switch issue.Type {
		case templates.IssueAmbiguous:
			fmt.Fprintf(os.Stderr, "%q is ambiguous:\n", issue.RawQuery)
			for _, match := range issue.Matches {
				fmt.Fprintf(os.Stderr, "  %s (%s)\n", match.Name, match.Kind)
			}
		default:
			fmt.Fprintf(os.Stderr, "no template matches %q\n", issue.RawQuery)
			if len(issue.Matches) > 0 {
				fmt.Fprintln(os.Stderr, "  did you mean:")
				for _, match := range issue.Matches {
					fmt.Fprintf(os.Stderr, "    %s\n", match.Name)
				}
			}
		}
	}

	if len(issues) == 1 {
		return fmt.Errorf("1 template query could not be resolved")
	}
	return fmt.Errorf("%d template queries could not be resolved", len(issues))
}
