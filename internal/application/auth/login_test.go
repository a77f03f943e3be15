package auth

import (
	"context"
	"errors"
	"testing"

	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

func registerAlice(t *testing.T, repo *memUserRepo, issuer *fakeIssuer) {
	t.Helper()
	reg := NewRegisterUser(repo, &fakeHasher{}, issuer)
	if _, err := reg.Execute(context.Background(), RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &memUserRepo{}
	issuer := newFakeIssuer()
	registerAlice(t, repo, issuer)
	lockout := newFakeLockout()
	uc := NewLogin(repo, &fakeHasher{}, issuer, lockout)

	res, err := uc.Execute(context.Background(), LoginInput{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}
	if res.User.Username != "alice" {
		t.Errorf("username = %q, want alice", res.User.Username)
	}
	if lockout.successes["alice@example.com"] != 1 {
		t.Error("success should clear the failure counter")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := &memUserRepo{}
	issuer := newFakeIssuer()
	registerAlice(t, repo, issuer)
	uc := NewLogin(repo, &fakeHasher{}, issuer, newFakeLockout())

	_, unknownErr := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, wrongErr := uc.Execute(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong"})

	if !errors.Is(unknownErr, domerrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, domerrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginUnknownEmailBurnsHash(t *testing.T) {
	repo := &memUserRepo{}
	hasher := &fakeHasher{}
	uc := NewLogin(repo, hasher, newFakeIssuer(), newFakeLockout())

	_, err := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, domerrors.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if hasher.dummyCalls != 1 {
		t.Errorf("dummy verifications = %d, want 1", hasher.dummyCalls)
	}
}

func TestLoginRecordsFailures(t *testing.T) {
	repo := &memUserRepo{}
	issuer := newFakeIssuer()
	registerAlice(t, repo, issuer)
	lockout := newFakeLockout()
	uc := NewLogin(repo, &fakeHasher{}, issuer, lockout)

	_, _ = uc.Execute(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong"})
	_, _ = uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "wrong"})

	if lockout.failures["alice@example.com"] != 1 {
		t.Errorf("failures for known email = %d, want 1", lockout.failures["alice@example.com"])
	}
	if lockout.failures["nobody@example.com"] != 1 {
		t.Errorf("failures for unknown email = %d, want 1", lockout.failures["nobody@example.com"])
	}
}

func TestLoginLockedAccount(t *testing.T) {
	repo := &memUserRepo{}
	issuer := newFakeIssuer()
	registerAlice(t, repo, issuer)
	lockout := newFakeLockout()
	lockout.locked = true
	lockout.retryAfter = 120
	uc := NewLogin(repo, &fakeHasher{}, issuer, lockout)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "alice@example.com", Password: "secret1"})
	var locked *domerrors.AccountLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("err = %v, want AccountLockedError", err)
	}
	if locked.RetryAfterSeconds != 120 {
		t.Errorf("retry after = %d, want 120", locked.RetryAfterSeconds)
	}
}

func TestLoginWithoutLockoutStore(t *testing.T) {
	repo := &memUserRepo{}
	issuer := newFakeIssuer()
	registerAlice(t, repo, issuer)
	uc := NewLogin(repo, &fakeHasher{}, issuer, nil)

	if _, err := uc.Execute(context.Background(), LoginInput{Email: "alice@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login with nil lockout: %v", err)
	}
}
