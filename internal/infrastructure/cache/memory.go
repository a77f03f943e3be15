package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
)

type memoryEntry struct {
	md        *domain.RepoMetadata
	expiresAt time.Time
}

// MemoryCache is the single-instance fallback when Redis is not configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, repoURL string) (*domain.RepoMetadata, error) {
	c.mu.RLock()
	e, ok := c.data[repoURL]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, nil
	}
	return e.md, nil
}

func (c *MemoryCache) Set(ctx context.Context, repoURL string, md *domain.RepoMetadata) error {
	c.mu.Lock()
	c.data[repoURL] = memoryEntry{md: md, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

var _ ports.RepoMetadataCache = (*MemoryCache)(nil)
