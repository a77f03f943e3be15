package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Alice@Example.COM  ", "alice@example.com"},
		{"bob@example.com", "bob@example.com"},
		{strings.Repeat("a", MaxEmailLength) + "@x.io", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := SanitizeEmail(tc.in); got != tc.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizePassword(t *testing.T) {
	if got := SanitizePassword("  secret1  "); got != "secret1" {
		t.Errorf("got %q, want trimmed", got)
	}
	if got := SanitizePassword(strings.Repeat("x", MaxPasswordLength+1)); got != "" {
		t.Errorf("over-long password should sanitize to empty, got %q", got)
	}
}

func TestFieldErrors(t *testing.T) {
	type body struct {
		Username string `json:"username" validate:"required,min=3,max=30"`
		Email    string `json:"email" validate:"required,email"`
		Status   string `json:"status" validate:"omitempty,oneof=active paused"`
	}
	v := validator.New()

	err := v.Struct(&body{Username: "ab", Email: "not-an-email", Status: "dormant"})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fields := fieldErrors(err)
	if fields["username"] != "must be at least 3 characters" {
		t.Errorf("username: %q", fields["username"])
	}
	if fields["email"] != "must be a valid email address" {
		t.Errorf("email: %q", fields["email"])
	}
	if fields["status"] != "must be one of: active paused" {
		t.Errorf("status: %q", fields["status"])
	}

	fields = fieldErrors(v.Struct(&body{Email: "a@b.co"}))
	if fields["username"] != "username is required" {
		t.Errorf("required: %q", fields["username"])
	}
}

func TestFieldErrorsNonValidatorError(t *testing.T) {
	fields := fieldErrors(errors.New("unexpected EOF"))
	if fields["body"] != "invalid request body" {
		t.Errorf("fields = %v", fields)
	}
}
