// Package githubfake is an in-process stand-in for the GitHub OAuth and REST
// endpoints used by this service.
package githubfake

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/jrsteele09/readme-writer/github"
	"golang.org/x/oauth2"
)

type repo struct {
	meta  github.Repository
	files map[string]string
}

// Server is a fake GitHub. Access tokens are bound to users through AddUser.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	codes     map[string]string
	users     map[string]github.User
	repos     map[string]*repo
	exchanges int
	requests  []string
}

func New() *Server {
	s := &Server{
		codes: make(map[string]string),
		users: make(map[string]github.User),
		repos: make(map[string]*repo),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", s.handleAccessToken)
	mux.HandleFunc("GET /user", s.authed(s.handleUser))
	mux.HandleFunc("GET /user/repos", s.authed(s.handleListRepos))
	mux.HandleFunc("GET /repos/{owner}/{repo}", s.authed(s.handleRepo))
	mux.HandleFunc("GET /repos/{owner}/{repo}/git/trees/{ref}", s.authed(s.handleTree))
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", s.authed(s.handleContents))
	s.Server = httptest.NewServer(mux)
	return s
}

// Endpoint returns the OAuth endpoint served by the fake
func (s *Server) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   s.URL + "/login/oauth/authorize",
		TokenURL:  s.URL + "/login/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// AddUser makes code exchangeable for accessToken, which then belongs to user
func (s *Server) AddUser(code, accessToken string, user github.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = accessToken
	s.users[accessToken] = user
}

// AddRepo registers a repository on the main branch with the given files
func (s *Server) AddRepo(owner, name, description string, files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[owner+"/"+name] = &repo{
		meta: github.Repository{
			ID:            int64(len(s.repos) + 1),
			Name:          name,
			FullName:      owner + "/" + name,
			HTMLURL:       "https://github.com/" + owner + "/" + name,
			Description:   description,
			DefaultBranch: "main",
		},
		files: files,
	}
}

// Exchanges returns how many code exchanges have been attempted
func (s *Server) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges
}

// Requests returns the paths requested so far, in order
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.exchanges++
	accessToken, ok := s.codes[r.Form.Get("code")]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "bad_verification_code",
			"error_description": "The code passed is incorrect or expired.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": accessToken,
		"token_type":   "bearer",
		"scope":        "read:user,repo",
	})
}

func (s *Server) authed(next func(http.ResponseWriter, *http.Request, github.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		accessToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		user, ok := s.users[accessToken]
		s.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		next(w, r, user)
	}
}

func (s *Server) handleUser(w http.ResponseWriter, _ *http.Request, user github.User) {
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListRepos(w http.ResponseWriter, _ *http.Request, _ github.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]github.Repository, 0, len(s.repos))
	for _, r := range s.repos {
		out = append(out, r.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*repo, bool) {
	s.mu.Lock()
	rp, ok := s.repos[r.PathValue("owner")+"/"+r.PathValue("repo")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
	return rp, ok
}

func (s *Server) handleRepo(w http.ResponseWriter, r *http.Request, _ github.User) {
	if rp, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, rp.meta)
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request, _ github.User) {
	rp, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if r.PathValue("ref") != rp.meta.DefaultBranch {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	entries := map[string]string{}
	for p := range rp.files {
		entries[p] = github.EntryBlob
		for dir := path.Dir(p); dir != "."; dir = path.Dir(dir) {
			entries[dir] = github.EntryTree
		}
	}
	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	tree := make([]github.TreeEntry, 0, len(paths))
	for _, p := range paths {
		tree = append(tree, github.TreeEntry{Path: p, Type: entries[p], URL: s.URL + "/blobs/" + p})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sha": "deadbeef", "tree": tree, "truncated": false})
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request, _ github.User) {
	rp, ok := s.lookup(w, r)
	if !ok {
		return
	}
	content, ok := rp.files[r.PathValue("path")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"type":     "file",
		"encoding": "base64",
		"content":  wrapBase64(base64.StdEncoding.EncodeToString([]byte(content))),
	})
}

// wrapBase64 breaks encoded content into 60 column lines like the real API
func wrapBase64(s string) string {
	var b strings.Builder
	for len(s) > 60 {
		b.WriteString(s[:60])
		b.WriteByte('\n')
		s = s[60:]
	}
	b.WriteString(s)
	b.WriteByte('\n')
	return b.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("githubfake: encode response: %v", err))
	}
}
