package project

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
)

// ListProjects returns the owner's projects, optionally filtered by status.
type ListProjects struct {
	projects ports.ProjectRepository
}

func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

func (uc *ListProjects) Execute(ctx context.Context, owner domain.UserID, status *domain.ProjectStatus) ([]*domain.Project, error) {
	return uc.projects.List(ctx, owner, status)
}
