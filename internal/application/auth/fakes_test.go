package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

type memUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domerrors.ErrUserExists
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeHasher makes hashes transparent and counts DummyVerify calls.
type fakeHasher struct {
	dummyCalls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

func (h *fakeHasher) DummyVerify(string) {
	h.dummyCalls++
}

type fakeIssuer struct {
	issued map[string][2]string
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{issued: map[string][2]string{}}
}

func (i *fakeIssuer) Issue(userID, username string) (string, error) {
	token := fmt.Sprintf("token-%d", len(i.issued)+1)
	i.issued[token] = [2]string{userID, username}
	return token, nil
}

func (i *fakeIssuer) Verify(tokenString string) (string, string, error) {
	identity, ok := i.issued[tokenString]
	if !ok {
		return "", "", domerrors.ErrInvalidToken
	}
	return identity[0], identity[1], nil
}

type fakeLockout struct {
	locked     bool
	retryAfter int
	failures   map[string]int
	successes  map[string]int
}

func newFakeLockout() *fakeLockout {
	return &fakeLockout{failures: map[string]int{}, successes: map[string]int{}}
}

func (l *fakeLockout) IsLocked(_ context.Context, _ string) (bool, int) {
	return l.locked, l.retryAfter
}

func (l *fakeLockout) RecordFailure(_ context.Context, email string) {
	l.failures[email]++
}

func (l *fakeLockout) RecordSuccess(_ context.Context, email string) {
	l.successes[email]++
}
