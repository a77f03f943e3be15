package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// ParseProjectID parses the canonical string form.
func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, err
	}
	return ProjectID{UUID: id}, nil
}

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// ProjectStatus is the lifecycle state of a tracked side project.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusPaused    ProjectStatus = "paused"
	StatusAbandoned ProjectStatus = "abandoned"
	StatusShipped   ProjectStatus = "shipped"
)

// ParseProjectStatus validates a status string.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(s) {
	case StatusActive, StatusPaused, StatusAbandoned, StatusShipped:
		return ProjectStatus(s), true
	}
	return "", false
}

// Project is a side-project record owned by exactly one user. UserID is set
// at creation from the authenticated identity and never changes.
type Project struct {
	ID        ProjectID
	UserID    UserID
	Title     string
	Status    ProjectStatus
	Reason    string
	RepoURL   string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
