package project

import (
	"context"
	"strings"
	"time"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

// UpdateProjectInput carries the patch; nil pointers leave a field unchanged.
type UpdateProjectInput struct {
	Owner   domain.UserID
	ID      domain.ProjectID
	Title   *string
	Status  *domain.ProjectStatus
	Reason  *string
	RepoURL *string
	EndedAt *time.Time
}

// UpdateProject applies a partial update to an owned project. Ownership is
// re-checked on read and on write, so a wrong-owner PATCH is a plain
// not-found. Linking a new repository re-enqueues a metadata refresh.
type UpdateProject struct {
	projects ports.ProjectRepository
	enqueuer ports.TaskEnqueuer
}

func NewUpdateProject(projects ports.ProjectRepository, enqueuer ports.TaskEnqueuer) *UpdateProject {
	return &UpdateProject{projects: projects, enqueuer: enqueuer}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	p, err := uc.projects.GetByID(ctx, input.Owner, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	repoChanged := false
	if input.Title != nil {
		p.Title = strings.TrimSpace(*input.Title)
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.Reason != nil {
		p.Reason = *input.Reason
	}
	if input.RepoURL != nil {
		next := strings.TrimSpace(*input.RepoURL)
		repoChanged = next != p.RepoURL && next != ""
		p.RepoURL = next
	}
	if input.EndedAt != nil {
		t := *input.EndedAt
		p.EndedAt = &t
	}
	p.UpdatedAt = time.Now()
	ok, err := uc.projects.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrProjectNotFound
	}
	if repoChanged && uc.enqueuer != nil {
		_ = uc.enqueuer.EnqueueRepoRefresh(ctx, p.ID.String(), p.RepoURL)
	}
	return p, nil
}
