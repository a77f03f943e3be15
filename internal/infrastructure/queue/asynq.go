package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

const TypeRepoRefresh = "repometa:refresh"

type repoRefreshPayload struct {
	ProjectID string `json:"project_id"`
	RepoURL   string `json:"repo_url"`
}

// TaskEnqueuer enqueues background work via Asynq (Redis-backed).
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueRepoRefresh(ctx context.Context, projectID, repoURL string) error {
	payload, _ := json.Marshal(repoRefreshPayload{ProjectID: projectID, RepoURL: repoURL})
	task := asynq.NewTask(TypeRepoRefresh, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("project_id", projectID).Msg("enqueue repo refresh failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
