package errors

import "testing"

func TestSentinelMessagesStayGeneric(t *testing.T) {
	// These strings are client-visible; they must not name the account,
	// field, or failure mode.
	if got := ErrUserExists.Error(); got != "registration failed" {
		t.Errorf("ErrUserExists: %q", got)
	}
	if got := ErrInvalidCredentials.Error(); got != "invalid email or password" {
		t.Errorf("ErrInvalidCredentials: %q", got)
	}
	if ErrInvalidToken == nil || ErrProjectNotFound == nil {
		t.Error("sentinels must be non-nil")
	}
}

func TestAccountLockedError(t *testing.T) {
	err := &AccountLockedError{RetryAfterSeconds: 30}
	if err.Error() != "account locked; retry in 30s" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
