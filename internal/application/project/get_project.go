package project

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

// GetProject fetches one owned project. A project owned by a different user
// yields ErrProjectNotFound, indistinguishable from a missing one.
type GetProject struct {
	projects ports.ProjectRepository
}

func NewGetProject(projects ports.ProjectRepository) *GetProject {
	return &GetProject{projects: projects}
}

func (uc *GetProject) Execute(ctx context.Context, owner domain.UserID, id domain.ProjectID) (*domain.Project, error) {
	p, err := uc.projects.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return p, nil
}
