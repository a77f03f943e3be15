package repometa

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

// FetchRepoMetadata resolves metadata for a project's linked repository,
// cache first. The same path serves interactive reads and the background
// refresh worker, so both keep the cache warm.
type FetchRepoMetadata struct {
	fetcher ports.RepoMetadataFetcher
	cache   ports.RepoMetadataCache
	log     zerolog.Logger
}

func NewFetchRepoMetadata(fetcher ports.RepoMetadataFetcher, cache ports.RepoMetadataCache, log zerolog.Logger) *FetchRepoMetadata {
	return &FetchRepoMetadata{fetcher: fetcher, cache: cache, log: log}
}

// Execute returns cached metadata when present, otherwise fetches and caches.
func (uc *FetchRepoMetadata) Execute(ctx context.Context, repoURL string) (*domain.RepoMetadata, error) {
	if repoURL == "" {
		return nil, domerrors.ErrNoRepoLinked
	}
	if uc.cache != nil {
		md, err := uc.cache.Get(ctx, repoURL)
		if err != nil {
			uc.log.Warn().Err(err).Str("repo_url", repoURL).Msg("repo metadata cache read failed")
		} else if md != nil {
			return md, nil
		}
	}
	md, err := uc.fetcher.Fetch(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, repoURL, md); err != nil {
			uc.log.Warn().Err(err).Str("repo_url", repoURL).Msg("repo metadata cache write failed")
		}
	}
	return md, nil
}

// Refresh fetches unconditionally and overwrites the cache entry.
func (uc *FetchRepoMetadata) Refresh(ctx context.Context, repoURL string) error {
	if repoURL == "" {
		return domerrors.ErrNoRepoLinked
	}
	md, err := uc.fetcher.Fetch(ctx, repoURL)
	if err != nil {
		return err
	}
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Set(ctx, repoURL, md)
}
