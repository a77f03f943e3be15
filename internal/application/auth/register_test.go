package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

func TestRegisterUser(t *testing.T) {
	repo := &memUserRepo{}
	uc := NewRegisterUser(repo, &fakeHasher{}, newFakeIssuer())

	res, err := uc.Execute(context.Background(), RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token on registration")
	}
	if res.User.ID.String() == "" {
		t.Error("expected a generated user id")
	}
	if res.User.PasswordHash == "secret1" {
		t.Error("stored password must not be the plaintext")
	}

	stored, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if stored == nil || stored.Username != "alice" {
		t.Fatalf("user not persisted: %+v", stored)
	}
}

func TestRegisterUserTrimsUsername(t *testing.T) {
	repo := &memUserRepo{}
	uc := NewRegisterUser(repo, &fakeHasher{}, newFakeIssuer())

	res, err := uc.Execute(context.Background(), RegisterUserInput{
		Username: "  bob  ",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Username != "bob" {
		t.Errorf("username = %q, want %q", res.User.Username, "bob")
	}
}

func TestRegisterUserConcurrentSameEmail(t *testing.T) {
	repo := &memUserRepo{}
	uc := NewRegisterUser(repo, &fakeHasher{}, newFakeIssuer())
	input := RegisterUserInput{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	const racers = 8
	errs := make(chan error, racers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			_, err := uc.Execute(context.Background(), input)
			errs <- err
		}()
	}
	start.Done()

	var succeeded, conflicted int
	for i := 0; i < racers; i++ {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, domerrors.ErrUserExists):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != racers-1 {
		t.Errorf("successes = %d, conflicts = %d; want exactly 1 and %d", succeeded, conflicted, racers-1)
	}

	repo.mu.Lock()
	stored := len(repo.users)
	repo.mu.Unlock()
	if stored != 1 {
		t.Errorf("stored records = %d, want 1", stored)
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	repo := &memUserRepo{}
	uc := NewRegisterUser(repo, &fakeHasher{}, newFakeIssuer())

	input := RegisterUserInput{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	for _, dup := range []RegisterUserInput{
		{Username: "alice", Email: "other@example.com", Password: "secret1"},
		{Username: "other", Email: "alice@example.com", Password: "secret1"},
	} {
		_, err := uc.Execute(context.Background(), dup)
		if !errors.Is(err, domerrors.ErrUserExists) {
			t.Errorf("register %q/%q: err = %v, want ErrUserExists", dup.Username, dup.Email, err)
		}
	}
}
