package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// RequireSession rejects requests without a live session and stores the
// session in the request context. Every rejection reason gives the same 401.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.flow.ResolveSession(credentialFromRequest(r))
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Session rejected")
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next(w, r.WithContext(ctx))
		}
	}
}
