package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
)

const repoKeyPrefix = "repometa:"

// RedisCache stores repo metadata as JSON with a TTL. Shared across
// instances, which also lets the background worker warm entries for the
// HTTP path.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, repoURL string) (*domain.RepoMetadata, error) {
	raw, err := c.client.Get(ctx, repoKeyPrefix+repoURL).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var md domain.RepoMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

func (c *RedisCache) Set(ctx context.Context, repoURL string, md *domain.RepoMetadata) error {
	raw, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, repoKeyPrefix+repoURL, raw, c.ttl).Err()
}

var _ ports.RepoMetadataCache = (*RedisCache)(nil)
