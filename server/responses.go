package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/readme-writer/github"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/rs/zerolog"
)

const (
	contentTypeJSON = "application/json"
	msgUnauthorized = "Unauthorized"
	maxBodyBytes    = 1 << 20
)

// response is the JSON envelope of every API reply
type response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	User      any    `json:"user,omitempty"`
	Repos     any    `json:"repos,omitempty"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body response) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, response{Success: false, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeAppError maps the error taxonomy onto HTTP. fallback is the message for
// anything that is not the caller's fault.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var apiErr *github.APIError
	switch {
	case apperrors.IsAuthError(err):
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, fallback)
	case errors.Is(err, apperrors.ErrUpstreamNotFound):
		writeError(w, http.StatusNotFound, "Repository not found")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		// The stored GitHub token was revoked
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
