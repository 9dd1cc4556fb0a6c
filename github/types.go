// Package github talks to GitHub: the OAuth code exchange and the handful of
// REST endpoints the README pipeline reads from.
package github

import "fmt"

const (
	DefaultAPIURL    = "https://api.github.com"
	defaultUserAgent = "WriteMyReadme-App"
	acceptJSON       = "application/vnd.github+json"
)

// User is the authenticated user's profile
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Repository is the subset of repository metadata this service reads
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

// Tree entry types
const (
	EntryBlob = "blob"
	EntryTree = "tree"
)

// TreeEntry is one item of a recursive git tree listing
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type contentResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// APIError is a non 2xx response from the GitHub API
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: status %d: %s", e.StatusCode, e.Message)
}
