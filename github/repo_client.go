package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// RepoClient reads repository data on behalf of a user. Every call takes the
// user's upstream access token; nothing is cached between calls.
type RepoClient struct {
	apiURL     string
	httpClient *http.Client
	timeout    time.Duration
}

func NewRepoClient(apiURL string, timeout time.Duration, httpClient *http.Client) *RepoClient {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RepoClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// GetRepo returns repository metadata
func (c *RepoClient) GetRepo(ctx context.Context, accessToken, owner, repo string) (*Repository, error) {
	var r Repository
	if err := c.getJSON(ctx, accessToken, repoPath(owner, repo), &r); err != nil {
		return nil, fmt.Errorf("[github GetRepo] %s/%s: %w", owner, repo, err)
	}
	return &r, nil
}

// GetTree returns the recursive tree listing of ref
func (c *RepoClient) GetTree(ctx context.Context, accessToken, owner, repo, ref string) ([]TreeEntry, error) {
	var tr treeResponse
	path := repoPath(owner, repo) + "/git/trees/" + url.PathEscape(ref) + "?recursive=1"
	if err := c.getJSON(ctx, accessToken, path, &tr); err != nil {
		return nil, fmt.Errorf("[github GetTree] %s/%s@%s: %w", owner, repo, ref, err)
	}
	if tr.Truncated {
		log.Warn().Str("repo", owner+"/"+repo).Int("entries", len(tr.Tree)).Msg("GitHub truncated the tree listing")
	}
	return tr.Tree, nil
}

// GetFileContent returns the decoded content of a file. Missing files return an
// error matching ErrUpstreamNotFound.
func (c *RepoClient) GetFileContent(ctx context.Context, accessToken, owner, repo, filePath string) (string, error) {
	var cr contentResponse
	if err := c.getJSON(ctx, accessToken, repoPath(owner, repo)+"/contents/"+escapePath(filePath), &cr); err != nil {
		return "", fmt.Errorf("[github GetFileContent] %s: %w", filePath, err)
	}
	if cr.Type != "" && cr.Type != "file" {
		return "", fmt.Errorf("[github GetFileContent] %s is a %s: %w", filePath, cr.Type, apperrors.ErrUpstreamNotFound)
	}
	if cr.Encoding != "base64" {
		return cr.Content, nil
	}
	// GitHub wraps base64 content at 60 columns
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("[github GetFileContent] %s: failed to decode content: %w", filePath, err)
	}
	return string(decoded), nil
}

// ListRepos returns up to 100 repositories the user can access
func (c *RepoClient) ListRepos(ctx context.Context, accessToken string) ([]Repository, error) {
	var repos []Repository
	if err := c.getJSON(ctx, accessToken, "/user/repos?visibility=all&per_page=100", &repos); err != nil {
		return nil, fmt.Errorf("[github ListRepos] %w", err)
	}
	return repos, nil
}

func (c *RepoClient) getJSON(ctx context.Context, accessToken, path string, out any) error {
	if accessToken == "" {
		return fmt.Errorf("github token is required")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.clientFor(ctx, accessToken).Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// clientFor wraps the base client with a bearer token transport
func (c *RepoClient) clientFor(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstreamNotFound, apiErr)
	}
	return apiErr
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
