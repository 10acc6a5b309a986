package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignorehub/ignorehub/internal/db"
	"github.com/ignorehub/ignorehub/internal/templates"
)

const fetchWorkers = 4

// FetchFailure names one template whose body could not be fetched.
type FetchFailure struct {
	Template templates.Template
	Err      error
}

// Service composes the remote client with the local index cache.
type Service struct {
	client *Client
	repo   *db.TemplateRepository
	ttl    time.Duration
	logger zerolog.Logger
}

// NewService creates a registry service. repo may be nil to disable
// caching.
func NewService(client *Client, repo *db.TemplateRepository, ttl time.Duration, logger zerolog.Logger) *Service {
	return &Service{client: client, repo: repo, ttl: ttl, logger: logger}
}

// LoadIndex returns the template index, serving the cached snapshot when
// it is fresh and force is false. A fetched index replaces the cached
// snapshot wholesale; cache write failures degrade to a warning.
func (s *Service) LoadIndex(ctx context.Context, force bool) ([]templates.Template, error) {
	if !force && s.repo != nil {
		if records, ok := s.cachedIndex(ctx); ok {
			return records, nil
		}
	}

	paths, err := s.client.ListTemplatePaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("load template index: %w", err)
	}

	records := templates.BuildIndex(paths)
	if len(records) == 0 {
		return nil, fmt.Errorf("template source %s/%s contains no templates", s.client.Owner, s.client.Repo)
	}

	if s.repo != nil {
		if err := s.repo.ReplaceIndex(ctx, records); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache template index")
		}
	}

	s.logger.Debug().Int("templates", len(records)).Msg("template index refreshed")
	return records, nil
}

// FetchTemplates fetches the bodies of the given records with bounded
// concurrency, preserving record order in the result. Per-template
// failures are returned by name rather than aborting the batch.
func (s *Service) FetchTemplates(ctx context.Context, records []templates.Template) ([]templates.WithSource, []FetchFailure) {
	results := make([]*templates.WithSource, len(records))
	errs := make([]error, len(records))

	var wg sync.WaitGroup
	sem := make(chan struct{}, fetchWorkers)
	for i, record := range records {
		wg.Add(1)
		go func(i int, record templates.Template) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			source, err := s.client.FetchBody(ctx, record.Path)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = &templates.WithSource{Meta: record, Source: source}
		}(i, record)
	}
	wg.Wait()

	fetched := make([]templates.WithSource, 0, len(records))
	var failures []FetchFailure
	for i, record := range records {
		if errs[i] != nil {
			failures = append(failures, FetchFailure{Template: record, Err: errs[i]})
			continue
		}
		fetched = append(fetched, *results[i])
	}
	return fetched, failures
}

func (s *Service) cachedIndex(ctx context.Context) ([]templates.Template, bool) {
	meta, err := s.repo.Meta(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrIndexNotCached) {
			s.logger.Warn().Err(err).Msg("failed to read cache meta")
		}
		return nil, false
	}
	if !meta.Fresh(s.ttl, time.Now().UTC()) {
		return nil, false
	}

	records, err := s.repo.ListTemplates(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read cached template index")
		return nil, false
	}
	if len(records) == 0 {
		return nil, false
	}

	s.logger.Debug().
		Str("snapshot_id", meta.SnapshotID).
		Int("templates", len(records)).
		Msg("serving cached template index")
	return records, true
}
