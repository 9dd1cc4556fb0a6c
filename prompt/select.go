package prompt

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/readme-writer/github"
)

const (
	MaxFolderEntries       = 150
	MaxKeyFiles            = 6
	MaxExcerptChars        = 1500
	MaxExistingReadmeChars = 3000
)

// Matched as raw prefixes, so ".git" also drops ".github/"
var excludedPrefixes = []string{"node_modules", ".git", "dist"}

// Matched as whole path segments at any depth
var excludedDirs = map[string]bool{
	"node_modules": true,
	"build":        true,
	"vendor":       true,
	".next":        true,
	"coverage":     true,
}

var sourceExtensions = map[string]bool{
	".js":   true,
	".ts":   true,
	".jsx":  true,
	".tsx":  true,
	".py":   true,
	".java": true,
	".go":   true,
}

// Excluded reports whether a tree path is dependency, VCS or build output
func Excluded(p string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	for _, seg := range strings.Split(p, "/") {
		if excludedDirs[seg] {
			return true
		}
	}
	return false
}

// FolderPaths keeps the non-excluded paths in tree order, at most MaxFolderEntries
func FolderPaths(entries []github.TreeEntry) []string {
	paths := make([]string, 0, min(len(entries), MaxFolderEntries))
	for _, e := range entries {
		if Excluded(e.Path) {
			continue
		}
		paths = append(paths, e.Path)
		if len(paths) == MaxFolderEntries {
			break
		}
	}
	return paths
}

// SelectKeyFiles picks the first MaxKeyFiles source blobs in tree order
func SelectKeyFiles(entries []github.TreeEntry) []github.TreeEntry {
	var out []github.TreeEntry
	for _, e := range entries {
		if e.Type != github.EntryBlob || Excluded(e.Path) || !sourceExtensions[path.Ext(e.Path)] {
			continue
		}
		out = append(out, e)
		if len(out) == MaxKeyFiles {
			break
		}
	}
	return out
}

// Excerpt returns the first MaxExcerptChars characters of content
func Excerpt(content string) string {
	return truncate(content, MaxExcerptChars)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
