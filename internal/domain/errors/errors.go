package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status. Messages are the
// client-visible wording: credential and conflict failures stay generic so
// responses never reveal which account or field caused them.
var (
	ErrUserExists         = errors.New("registration failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrProjectNotFound    = errors.New("project not found")
	ErrNoRepoLinked       = errors.New("project has no linked repository")
	ErrBadRepoURL         = errors.New("unsupported repository URL")
	ErrRepoUnavailable    = errors.New("repository metadata unavailable")
)

// AccountLockedError is returned by login when too many failures put the
// account in cooldown.
type AccountLockedError struct {
	RetryAfterSeconds int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked; retry in %ds", e.RetryAfterSeconds)
}
