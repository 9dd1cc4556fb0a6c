package readme

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/readme-writer/github"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/jrsteele09/readme-writer/prompt"
	"github.com/rs/zerolog/log"
)

const (
	manifestPath = "package.json"
	readmePath   = "README.md"
)

// RepoReader is the part of the GitHub API the collector reads from
type RepoReader interface {
	GetRepo(ctx context.Context, accessToken, owner, repo string) (*github.Repository, error)
	GetTree(ctx context.Context, accessToken, owner, repo, ref string) ([]github.TreeEntry, error)
	GetFileContent(ctx context.Context, accessToken, owner, repo, path string) (string, error)
}

// Collector gathers the prompt inputs for one repository
type Collector struct {
	repos RepoReader
}

func NewCollector(repos RepoReader) *Collector {
	return &Collector{repos: repos}
}

// Collect reads metadata, the default branch tree, the manifest, the current
// README and key source files. Failing optional reads are skipped.
func (c *Collector) Collect(ctx context.Context, accessToken, owner, repo string) (*prompt.RepoContext, error) {
	meta, err := c.repos.GetRepo(ctx, accessToken, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("[readme Collect] %w", err)
	}

	tree, err := c.repos.GetTree(ctx, accessToken, owner, repo, meta.DefaultBranch)
	if err != nil {
		return nil, fmt.Errorf("[readme Collect] %w", err)
	}

	rc := &prompt.RepoContext{
		Owner:       owner,
		Repo:        repo,
		Description: meta.Description,
		FolderPaths: prompt.FolderPaths(tree),
	}

	if raw, ok := c.optionalFile(ctx, accessToken, owner, repo, manifestPath); ok {
		if m, ok := prompt.ParseManifest(raw); ok {
			rc.Manifest = m
		} else {
			log.Debug().Str("repo", owner+"/"+repo).Msg("package.json is not valid JSON, ignoring")
		}
	}

	if raw, ok := c.optionalFile(ctx, accessToken, owner, repo, readmePath); ok {
		rc.ExistingReadme = raw
	}

	for _, entry := range prompt.SelectKeyFiles(tree) {
		content, ok := c.optionalFile(ctx, accessToken, owner, repo, entry.Path)
		if !ok {
			continue
		}
		rc.KeyFiles = append(rc.KeyFiles, prompt.KeyFile{Path: entry.Path, Excerpt: prompt.Excerpt(content)})
	}

	return rc, nil
}

func (c *Collector) optionalFile(ctx context.Context, accessToken, owner, repo, path string) (string, bool) {
	content, err := c.repos.GetFileContent(ctx, accessToken, owner, repo, path)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUpstreamNotFound) {
			log.Warn().Err(err).Str("repo", owner+"/"+repo).Str("path", path).Msg("Skipping unreadable file")
		}
		return "", false
	}
	return content, true
}
