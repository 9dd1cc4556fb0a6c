package readme_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/readme-writer/github"
	"github.com/jrsteele09/readme-writer/github/githubfake"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/jrsteele09/readme-writer/readme"
	"github.com/stretchr/testify/require"
)

const accessToken = "gho_collect"

func newCollector(t *testing.T) (*readme.Collector, *githubfake.Server) {
	t.Helper()
	fake := githubfake.New()
	t.Cleanup(fake.Close)
	fake.AddUser("code", accessToken, github.User{ID: 1, Login: "octocat"})
	return readme.NewCollector(github.NewRepoClient(fake.URL, 5*time.Second, nil)), fake
}

func TestCollector_Collect(t *testing.T) {
	ctx := context.Background()

	t.Run("full repository", func(t *testing.T) {
		c, fake := newCollector(t)
		fake.AddRepo("octocat", "web", "A web app", map[string]string{
			"package.json":              `{"name":"web","scripts":{"dev":"vite"}}`,
			"README.md":                 "# web\nold docs",
			"src/app.tsx":               strings.Repeat("a", 2000),
			"src/util.ts":               "export const x = 1",
			"src/style.css":             "body {}",
			"node_modules/react/api.js": "module.exports = {}",
		})

		rc, err := c.Collect(ctx, accessToken, "octocat", "web")
		require.NoError(t, err)
		require.Equal(t, "A web app", rc.Description)
		require.NotNil(t, rc.Manifest)
		require.Equal(t, "vite", rc.Manifest.Scripts["dev"])
		require.Equal(t, "# web\nold docs", rc.ExistingReadme)

		require.Len(t, rc.KeyFiles, 2)
		require.Equal(t, "src/app.tsx", rc.KeyFiles[0].Path)
		require.Len(t, rc.KeyFiles[0].Excerpt, 1500)
		require.Equal(t, "src/util.ts", rc.KeyFiles[1].Path)

		for _, p := range rc.FolderPaths {
			require.False(t, strings.HasPrefix(p, "node_modules"), p)
		}
		require.Contains(t, rc.FolderPaths, "src/style.css")
	})

	t.Run("optional files missing", func(t *testing.T) {
		c, fake := newCollector(t)
		fake.AddRepo("octocat", "tiny", "", map[string]string{"main.go": "package main"})

		rc, err := c.Collect(ctx, accessToken, "octocat", "tiny")
		require.NoError(t, err)
		require.Nil(t, rc.Manifest)
		require.Empty(t, rc.ExistingReadme)
		require.Len(t, rc.KeyFiles, 1)
	})

	t.Run("invalid manifest ignored", func(t *testing.T) {
		c, fake := newCollector(t)
		fake.AddRepo("octocat", "broken", "", map[string]string{"package.json": "{"})

		rc, err := c.Collect(ctx, accessToken, "octocat", "broken")
		require.NoError(t, err)
		require.Nil(t, rc.Manifest)
	})

	t.Run("unknown repository", func(t *testing.T) {
		c, _ := newCollector(t)
		_, err := c.Collect(ctx, accessToken, "octocat", "nope")
		require.True(t, errors.Is(err, apperrors.ErrUpstreamNotFound))
	})
}
