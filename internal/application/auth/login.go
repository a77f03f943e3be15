package auth

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same ErrInvalidCredentials, and the unknown-email
// path still burns a hash verification so the two are not separable by timing.
type Login struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	lockout ports.LoginLockoutStore
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, lockout: lockout}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if uc.lockout != nil {
		if locked, retryAfter := uc.lockout.IsLocked(ctx, input.Email); locked {
			return nil, &domerrors.AccountLockedError{RetryAfterSeconds: retryAfter}
		}
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.DummyVerify(input.Password)
		uc.recordFailure(ctx, input.Email)
		return nil, domerrors.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		uc.recordFailure(ctx, input.Email)
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, input.Email)
	}
	token, err := uc.issuer.Issue(user.ID.String(), user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (uc *Login) recordFailure(ctx context.Context, email string) {
	if uc.lockout != nil {
		uc.lockout.RecordFailure(ctx, email)
	}
}
