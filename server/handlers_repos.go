package server

import (
	"net/http"
)

type repoSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Private     bool   `json:"private"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
}

func (s *Server) ListReposHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		repos, err := s.repos.ListRepos(r.Context(), string(sess.UpstreamToken))
		if err != nil {
			writeAppError(w, r, err, "Failed to list repositories")
			return
		}

		out := make([]repoSummary, 0, len(repos))
		for _, repo := range repos {
			out = append(out, repoSummary{
				ID:          repo.ID,
				Name:        repo.Name,
				FullName:    repo.FullName,
				Private:     repo.Private,
				HTMLURL:     repo.HTMLURL,
				Description: repo.Description,
			})
		}
		writeJSON(w, http.StatusOK, response{Success: true, Repos: out})
	}
}

// RepoTreeHandler returns the recursive tree of the default branch
func (s *Server) RepoTreeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		owner, name := r.PathValue("owner"), r.PathValue("repo")
		token := string(sess.UpstreamToken)

		repo, err := s.repos.GetRepo(r.Context(), token, owner, name)
		if err != nil {
			writeAppError(w, r, err, "Failed to read repository")
			return
		}
		tree, err := s.repos.GetTree(r.Context(), token, owner, name, repo.DefaultBranch)
		if err != nil {
			writeAppError(w, r, err, "Failed to read repository tree")
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true, Data: tree})
	}
}
