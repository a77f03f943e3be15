package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
)

type CreateProjectInput struct {
	Owner     domain.UserID
	Title     string
	Status    domain.ProjectStatus
	Reason    string
	RepoURL   string
	StartedAt *time.Time
}

// CreateProject stores a new project stamped with the authenticated owner.
// Any owner supplied by the client body never reaches this input. When a
// repository is linked, a background metadata refresh is enqueued so the
// first read hits a warm cache.
type CreateProject struct {
	projects ports.ProjectRepository
	enqueuer ports.TaskEnqueuer
}

func NewCreateProject(projects ports.ProjectRepository, enqueuer ports.TaskEnqueuer) *CreateProject {
	return &CreateProject{projects: projects, enqueuer: enqueuer}
}

func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	now := time.Now()
	startedAt := now
	if input.StartedAt != nil {
		startedAt = *input.StartedAt
	}
	status := input.Status
	if status == "" {
		status = domain.StatusActive
	}
	p := &domain.Project{
		ID:        domain.NewProjectID(uuid.New()),
		UserID:    input.Owner,
		Title:     strings.TrimSpace(input.Title),
		Status:    status,
		Reason:    input.Reason,
		RepoURL:   strings.TrimSpace(input.RepoURL),
		StartedAt: startedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	if p.RepoURL != "" && uc.enqueuer != nil {
		// Best effort: a failed enqueue only delays cache warming.
		_ = uc.enqueuer.EnqueueRepoRefresh(ctx, p.ID.String(), p.RepoURL)
	}
	return p, nil
}
