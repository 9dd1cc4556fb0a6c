package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

const notProvided = "Not provided"

type readmeData struct {
	Owner          string
	Repo           string
	Description    string
	FolderTree     string
	Manifest       string
	ExistingReadme string
	KeyFiles       string
}

// BuildReadme renders the README generation prompt. Sections always appear in
// the same order and missing data renders as "Not provided".
func BuildReadme(rc RepoContext) (string, error) {
	data := readmeData{
		Owner:          rc.Owner,
		Repo:           rc.Repo,
		Description:    orNotProvided(strings.TrimSpace(rc.Description)),
		FolderTree:     orNotProvided(strings.Join(rc.FolderPaths, "\n")),
		Manifest:       orNotProvided(rc.Manifest.Pretty()),
		ExistingReadme: orNotProvided(truncate(strings.TrimSpace(rc.ExistingReadme), MaxExistingReadmeChars)),
		KeyFiles:       orNotProvided(renderKeyFiles(rc.KeyFiles)),
	}
	return execute("readme.tmpl", data)
}

// BuildRestyle renders the presentation-only restyle prompt for text
func BuildRestyle(text string) (string, error) {
	return execute("restyle.tmpl", struct{ Readme string }{Readme: text})
}

func renderKeyFiles(files []KeyFile) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, "// FILE: "+f.Path+"\n"+f.Excerpt)
	}
	return strings.Join(parts, "\n\n")
}

func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("[prompt %s] %w", name, err)
	}
	return b.String(), nil
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
