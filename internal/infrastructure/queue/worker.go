package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/sidequesthq/sidequest/internal/application/repometa"
)

// Worker runs Asynq task handlers (background repo metadata refresh).
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	refresh *repometa.FetchRepoMetadata
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, refresh *repometa.FetchRepoMetadata, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, refresh: refresh, log: log}
	mux.HandleFunc(TypeRepoRefresh, w.handleRepoRefresh)
	return w
}

func (w *Worker) handleRepoRefresh(ctx context.Context, t *asynq.Task) error {
	var p repoRefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("repo refresh task payload invalid")
		return err
	}
	if err := w.refresh.Refresh(ctx, p.RepoURL); err != nil {
		w.log.Warn().Err(err).
			Str("project_id", p.ProjectID).
			Str("repo_url", p.RepoURL).
			Msg("repo metadata refresh failed")
		return err
	}
	w.log.Info().
		Str("project_id", p.ProjectID).
		Str("repo_url", p.RepoURL).
		Msg("repo metadata cache warmed")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
