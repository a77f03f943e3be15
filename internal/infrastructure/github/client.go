package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sidequesthq/sidequest/internal/application/ports"
	"github.com/sidequesthq/sidequest/internal/domain"
	domerrors "github.com/sidequesthq/sidequest/internal/domain/errors"
)

const defaultBaseURL = "https://api.github.com"

var repoPathRe = regexp.MustCompile(`github\.com/([\w.-]+)/([\w.-]+)`)

// Client fetches repository metadata from the GitHub REST API: latest
// commit, open pull request count, and contributors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client (default: 10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) { g.httpClient = c }
}

// WithBaseURL overrides the API base URL (tests, GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(g *Client) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithToken sets a bearer token for a higher rate limit. Optional; the
// endpoints used here are public.
func WithToken(token string) Option {
	return func(g *Client) { g.token = token }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseRepoURL extracts owner and repo from a GitHub repository URL.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	m := repoPathRe.FindStringSubmatch(repoURL)
	if m == nil {
		return "", "", domerrors.ErrBadRepoURL
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), nil
}

type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

// Fetch implements ports.RepoMetadataFetcher.
func (c *Client) Fetch(ctx context.Context, repoURL string) (*domain.RepoMetadata, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	md := &domain.RepoMetadata{
		Owner:     owner,
		Repo:      repo,
		FetchedAt: time.Now(),
	}

	var commits []commitResponse
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits?per_page=1", owner, repo), &commits); err != nil {
		return nil, err
	}
	if len(commits) > 0 {
		md.LatestCommit = &domain.RepoCommit{
			SHA:     commits[0].SHA,
			Message: commits[0].Commit.Message,
			Author:  commits[0].Commit.Author.Name,
			Date:    commits[0].Commit.Author.Date,
		}
	}

	var prs []json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls?state=open&per_page=100", owner, repo), &prs); err != nil {
		return nil, err
	}
	md.OpenPRs = len(prs)

	var contributors []contributorResponse
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contributors?per_page=30", owner, repo), &contributors); err != nil {
		return nil, err
	}
	for _, cr := range contributors {
		md.Contributors = append(md.Contributors, domain.RepoContributor{
			Login:         cr.Login,
			AvatarURL:     cr.AvatarURL,
			Contributions: cr.Contributions,
		})
	}

	return md, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domerrors.ErrRepoUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: github returned %d", domerrors.ErrRepoUnavailable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ ports.RepoMetadataFetcher = (*Client)(nil)
