package ports

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/domain"
)

// UserRepository defines persistence for users. Create must rely on
// storage-level unique constraints for username and email and return
// domain/errors.ErrUserExists on a conflict, so two concurrent
// registrations can never both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns (nil, nil) when no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// ProjectRepository defines persistence for projects. Every operation is
// scoped by the owning user; a project belonging to someone else behaves
// exactly like a missing one.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// GetByID returns (nil, nil) when the project does not exist or is
	// owned by a different user.
	GetByID(ctx context.Context, owner domain.UserID, id domain.ProjectID) (*domain.Project, error)
	// List returns the owner's projects, optionally filtered by status.
	List(ctx context.Context, owner domain.UserID, status *domain.ProjectStatus) ([]*domain.Project, error)
	// Update persists mutable fields of an owned project. Returns false
	// when no owned row matched.
	Update(ctx context.Context, project *domain.Project) (bool, error)
	// Delete removes an owned project. Returns false when no owned row
	// matched.
	Delete(ctx context.Context, owner domain.UserID, id domain.ProjectID) (bool, error)
}
