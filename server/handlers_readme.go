package server

import (
	"net/http"
	"strings"
)

type generateRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

type beautifyRequest struct {
	Readme string `json:"readme"`
}

func (s *Server) GenerateReadmeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		var req generateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		owner, repo := strings.TrimSpace(req.Owner), strings.TrimSpace(req.Repo)
		if owner == "" || repo == "" {
			writeError(w, http.StatusBadRequest, "Missing 'owner' or 'repo'")
			return
		}

		rc, err := s.collector.Collect(r.Context(), string(sess.UpstreamToken), owner, repo)
		if err != nil {
			writeAppError(w, r, err, "Failed to read repository")
			return
		}

		out, err := s.readme.Generate(r.Context(), *rc)
		if err != nil {
			writeAppError(w, r, err, "Failed to generate README")
			return
		}

		writeJSON(w, http.StatusOK, response{Success: true, Data: out})
	}
}

func (s *Server) BeautifyReadmeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req beautifyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		out, err := s.readme.Restyle(r.Context(), req.Readme)
		if err != nil {
			writeAppError(w, r, err, restyleFailureMessage(req.Readme))
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true, Data: out})
	}
}

func restyleFailureMessage(input string) string {
	if strings.TrimSpace(input) == "" {
		return "README content is required"
	}
	return "Failed to beautify README"
}
