package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
)

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

type RegisterUserResult struct {
	User  *domain.User
	Token string
}

// RegisterUser creates an account and immediately issues a bearer token.
// Shape validation happens at the HTTP boundary; uniqueness is enforced by
// the repository's storage constraints, never by a read-then-write check.
type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, issuer: issuer}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String(), user.Username)
	if err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user, Token: token}, nil
}
