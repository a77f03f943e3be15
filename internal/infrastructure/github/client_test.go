package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in          string
		owner, repo string
		wantErr     bool
	}{
		{"https://github.com/alice/side-project", "alice", "side-project", false},
		{"https://github.com/alice/side-project.git", "alice", "side-project", false},
		{"github.com/bob/tool", "bob", "tool", false},
		{"https://gitlab.com/alice/project", "", "", true},
		{"not a url", "", "", true},
		{"", "", "", true},
	}
	for _, tc := range tests {
		owner, repo, err := ParseRepoURL(tc.in)
		if tc.wantErr {
			if !errors.Is(err, domerrors.ErrBadRepoURL) {
				t.Errorf("%q: expected ErrBadRepoURL, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		if owner != tc.owner || repo != tc.repo {
			t.Errorf("%q: got (%q, %q), want (%q, %q)", tc.in, owner, repo, tc.owner, tc.repo)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/alice/demo/commits":
			w.Write([]byte(`[{"sha":"abc123","commit":{"message":"initial commit","author":{"name":"Alice","date":"2024-05-01T10:00:00Z"}}}]`))
		case "/repos/alice/demo/pulls":
			w.Write([]byte(`[{},{}]`))
		case "/repos/alice/demo/contributors":
			w.Write([]byte(`[{"login":"alice","avatar_url":"https://example.com/a.png","contributions":42}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	md, err := c.Fetch(context.Background(), "https://github.com/alice/demo")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if md.Owner != "alice" || md.Repo != "demo" {
		t.Errorf("owner/repo: got %q/%q", md.Owner, md.Repo)
	}
	if md.LatestCommit == nil || md.LatestCommit.SHA != "abc123" || md.LatestCommit.Author != "Alice" {
		t.Errorf("latest commit: %+v", md.LatestCommit)
	}
	if md.OpenPRs != 2 {
		t.Errorf("open PRs: got %d, want 2", md.OpenPRs)
	}
	if len(md.Contributors) != 1 || md.Contributors[0].Login != "alice" || md.Contributors[0].Contributions != 42 {
		t.Errorf("contributors: %+v", md.Contributors)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "https://github.com/alice/demo")
	if !errors.Is(err, domerrors.ErrRepoUnavailable) {
		t.Fatalf("expected ErrRepoUnavailable, got %v", err)
	}
}
