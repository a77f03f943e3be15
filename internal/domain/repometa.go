package domain

import "time"

// RepoCommit is the most recent commit on a linked repository.
type RepoCommit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// RepoContributor is one contributor entry from the hosting API.
type RepoContributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

// RepoMetadata is the hosting-API view of a project's linked repository.
// It is derived data: fetched on demand, cached with a TTL, never the
// source of truth for anything.
type RepoMetadata struct {
	Owner        string            `json:"owner"`
	Repo         string            `json:"repo"`
	LatestCommit *RepoCommit       `json:"latest_commit,omitempty"`
	OpenPRs      int               `json:"open_prs"`
	Contributors []RepoContributor `json:"contributors"`
	FetchedAt    time.Time         `json:"fetched_at"`
}
