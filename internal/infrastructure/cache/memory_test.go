package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sidequesthq/sidequest/internal/domain"
)

func TestMemoryCacheHitWithinTTL(t *testing.T) {
	now := time.Now()
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	md := &domain.RepoMetadata{Owner: "alice", Repo: "demo", OpenPRs: 3}
	if err := c.Set(ctx, "https://github.com/alice/demo", md); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "https://github.com/alice/demo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.OpenPRs != 3 {
		t.Fatalf("expected cached entry, got %+v", got)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	now := time.Now()
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	_ = c.Set(ctx, "key", &domain.RepoMetadata{Owner: "a"})

	now = now.Add(2 * time.Minute)
	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	got, err := c.Get(context.Background(), "absent")
	if err != nil || got != nil {
		t.Fatalf("expected clean miss, got %+v, %v", got, err)
	}
}
