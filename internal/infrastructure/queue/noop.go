package queue

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
// Metadata is then fetched lazily on first read instead of in the background.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueRepoRefresh(ctx context.Context, projectID, repoURL string) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
