// Package prompt turns repository data into model prompts. It does no I/O.
package prompt

// RepoContext is everything known about a repository when a README prompt is
// assembled. Optional parts are left zero when unavailable.
type RepoContext struct {
	Owner       string
	Repo        string
	Description string

	// FolderPaths is already filtered and truncated, see FolderPaths
	FolderPaths []string

	Manifest       *Manifest
	ExistingReadme string
	KeyFiles       []KeyFile
}

// KeyFile is a bounded excerpt of one source file
type KeyFile struct {
	Path    string
	Excerpt string
}
