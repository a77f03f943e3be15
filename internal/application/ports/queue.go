package ports

import "context"

// TaskEnqueuer enqueues async tasks (background repo metadata refresh).
type TaskEnqueuer interface {
	EnqueueRepoRefresh(ctx context.Context, projectID, repoURL string) error
}
