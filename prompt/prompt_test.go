package prompt_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jrsteele09/readme-writer/github"
	"github.com/jrsteele09/readme-writer/prompt"
	"github.com/stretchr/testify/require"
)

func blob(p string) github.TreeEntry { return github.TreeEntry{Path: p, Type: github.EntryBlob} }
func tree(p string) github.TreeEntry { return github.TreeEntry{Path: p, Type: github.EntryTree} }

func TestExcluded(t *testing.T) {
	for _, p := range []string{
		"node_modules/react/index.js",
		".git/config",
		".github/workflows/ci.yml",
		"dist/bundle.js",
		"web/node_modules/x.js",
		"build/out.js",
		"vendor/github.com/x/y.go",
		"app/.next/cache",
		"coverage/lcov.info",
	} {
		require.True(t, prompt.Excluded(p), p)
	}
	for _, p := range []string{"src/index.js", "cmd/server/main.go", "docs/building.md", "src/vendored.go"} {
		require.False(t, prompt.Excluded(p), p)
	}
}

func TestFolderPaths(t *testing.T) {
	t.Run("truncates after exclusions", func(t *testing.T) {
		var entries []github.TreeEntry
		for i := 0; i < 200; i++ {
			switch i % 4 {
			case 0:
				entries = append(entries, blob(fmt.Sprintf("node_modules/pkg%d/index.js", i)))
			case 1:
				entries = append(entries, blob(fmt.Sprintf(".git/objects/%d", i)))
			default:
				entries = append(entries, blob(fmt.Sprintf("src/file%d.go", i)))
			}
		}
		paths := prompt.FolderPaths(entries)
		require.Len(t, paths, 100)
		for _, p := range paths {
			require.True(t, strings.HasPrefix(p, "src/"), p)
		}
		require.Equal(t, "src/file2.go", paths[0])
	})

	t.Run("caps at the limit", func(t *testing.T) {
		var entries []github.TreeEntry
		for i := 0; i < 200; i++ {
			entries = append(entries, tree(fmt.Sprintf("pkg%03d", i)))
		}
		paths := prompt.FolderPaths(entries)
		require.Len(t, paths, prompt.MaxFolderEntries)
		require.Equal(t, "pkg000", paths[0])
		require.Equal(t, "pkg149", paths[149])
	})

	t.Run("empty tree", func(t *testing.T) {
		require.Empty(t, prompt.FolderPaths(nil))
	})
}

func TestSelectKeyFiles(t *testing.T) {
	entries := []github.TreeEntry{
		tree("src"),
		blob("README.md"),
		blob("node_modules/lib/index.js"),
		blob("src/styles.css"),
	}
	for i := 0; i < 10; i++ {
		entries = append(entries, blob(fmt.Sprintf("src/mod%d.ts", i)))
	}

	files := prompt.SelectKeyFiles(entries)
	require.Len(t, files, prompt.MaxKeyFiles)
	require.Equal(t, "src/mod0.ts", files[0].Path)
	require.Equal(t, "src/mod5.ts", files[5].Path)

	require.Empty(t, prompt.SelectKeyFiles([]github.TreeEntry{tree("main.go"), blob("Makefile")}))
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short", prompt.Excerpt("short"))

	long := strings.Repeat("é", 4000)
	ex := prompt.Excerpt(long)
	require.Equal(t, prompt.MaxExcerptChars, utf8.RuneCountInString(ex))
	require.True(t, utf8.ValidString(ex))
}

func TestParseManifest(t *testing.T) {
	m, ok := prompt.ParseManifest(`{"name":"demo","scripts":{"dev":"vite"},"dependencies":{"react":"^18.0.0"},"devDependencies":{"vite":"^5"}}`)
	require.True(t, ok)
	require.Equal(t, "demo", m.Name)
	require.Equal(t, "vite", m.Scripts["dev"])
	require.Equal(t, "^18.0.0", m.Dependencies["react"])
	require.Equal(t, "^5", m.DevDependencies["vite"])
	require.Contains(t, m.Pretty(), "\n  \"name\": \"demo\"")

	_, ok = prompt.ParseManifest("{not json")
	require.False(t, ok)
	_, ok = prompt.ParseManifest("")
	require.False(t, ok)
}

func TestBuildReadme(t *testing.T) {
	t.Run("sections in order", func(t *testing.T) {
		m, ok := prompt.ParseManifest(`{"name":"demo"}`)
		require.True(t, ok)

		out, err := prompt.BuildReadme(prompt.RepoContext{
			Owner:          "octocat",
			Repo:           "hello",
			Description:    "A greeting service",
			FolderPaths:    []string{"cmd", "cmd/main.go"},
			Manifest:       m,
			ExistingReadme: "# old readme",
			KeyFiles:       []prompt.KeyFile{{Path: "cmd/main.go", Excerpt: "package main"}},
		})
		require.NoError(t, err)

		markers := []string{
			"REPOSITORY METADATA",
			"Owner: octocat",
			"FOLDER STRUCTURE",
			"cmd/main.go",
			"PACKAGE.JSON",
			`"name": "demo"`,
			"EXISTING README",
			"# old readme",
			"KEY SOURCE FILES",
			"// FILE: cmd/main.go\npackage main",
			"Based on the code structure",
			"This information is not specified in the repository",
			"REQUIRED README STRUCTURE",
			"# hello",
			"## Overview",
			"## License",
			"OUTPUT RULES",
		}
		last := -1
		for _, marker := range markers {
			idx := strings.Index(out, marker)
			require.Greater(t, idx, last, marker)
			last = idx
		}
	})

	t.Run("missing data", func(t *testing.T) {
		out, err := prompt.BuildReadme(prompt.RepoContext{Owner: "o", Repo: "r"})
		require.NoError(t, err)
		require.Contains(t, out, "Description: Not provided")
		require.Contains(t, out, "=== PACKAGE.JSON ===\nNot provided")
		require.Contains(t, out, "=== KEY SOURCE FILES (EXCERPTS) ===\nNot provided")
	})

	t.Run("existing readme truncated", func(t *testing.T) {
		out, err := prompt.BuildReadme(prompt.RepoContext{Owner: "o", Repo: "r", ExistingReadme: strings.Repeat("x", 5000)})
		require.NoError(t, err)
		require.Contains(t, out, strings.Repeat("x", prompt.MaxExistingReadmeChars))
		require.NotContains(t, out, strings.Repeat("x", prompt.MaxExistingReadmeChars+1))
	})
}

func TestBuildRestyle(t *testing.T) {
	out, err := prompt.BuildRestyle("# My Project\n\nSome text.")
	require.NoError(t, err)
	require.Contains(t, out, "# My Project\n\nSome text.")
	require.Contains(t, out, "Do not change any text")
	require.Contains(t, out, "#1E3A8A")
	require.Less(t, strings.Index(out, "STRICT RULES"), strings.Index(out, "INPUT README"))
}
