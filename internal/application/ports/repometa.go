package ports

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/domain"
)

// RepoMetadataFetcher fetches repository metadata from the hosting API.
type RepoMetadataFetcher interface {
	Fetch(ctx context.Context, repoURL string) (*domain.RepoMetadata, error)
}

// RepoMetadataCache is a TTL cache keyed by repository URL.
type RepoMetadataCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, repoURL string) (*domain.RepoMetadata, error)
	Set(ctx context.Context, repoURL string, md *domain.RepoMetadata) error
}
