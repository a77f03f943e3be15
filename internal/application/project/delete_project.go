package project

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

// DeleteProject removes one owned project; wrong-owner deletes are not-found.
type DeleteProject struct {
	projects ports.ProjectRepository
}

func NewDeleteProject(projects ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{projects: projects}
}

func (uc *DeleteProject) Execute(ctx context.Context, owner domain.UserID, id domain.ProjectID) error {
	ok, err := uc.projects.Delete(ctx, owner, id)
	if err != nil {
		return err
	}
	if !ok {
		return domerrors.ErrProjectNotFound
	}
	return nil
}
