package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/readme-writer/auth"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/rs/zerolog"
)

// GitHubLoginHandler sets the state cookie and redirects to GitHub
func (s *Server) GitHubLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirect, err := s.flow.InitiateLogin()
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to initiate login")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		s.setCookie(w, r, redirect.StateCookie)
		http.Redirect(w, r, redirect.URL, http.StatusFound)
	}
}

// GitHubCallbackHandler completes the handshake. A bad state is a client
// error; an upstream failure sends the user back to the login page.
func (s *Server) GitHubCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		result, err := s.flow.HandleCallback(r.Context(), q.Get("code"), q.Get("state"), cookieValue(r, auth.StateCookieName))
		s.setCookie(w, r, result.ClearStateCookie)

		if err != nil {
			logger := zerolog.Ctx(r.Context())
			if errors.Is(err, apperrors.ErrInvalidState) {
				logger.Warn().Err(err).Msg("Rejected OAuth callback")
				writeError(w, http.StatusBadRequest, "Invalid OAuth state")
				return
			}
			logger.Error().Err(err).Msg("OAuth callback failed")
			http.Redirect(w, r, s.config.GetClientURL()+ClientPathLoginFailed, http.StatusFound)
			return
		}

		s.setCookie(w, r, result.SessionCookie)
		http.Redirect(w, r, s.config.GetClientURL()+ClientPathDashboard, http.StatusFound)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.setCookie(w, r, s.flow.Logout(credentialFromRequest(r)))
		writeJSON(w, http.StatusOK, response{Success: true})
	}
}

func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.flow.ResolveCurrentUser(credentialFromRequest(r))
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Current user not resolved")
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true, User: user})
	}
}
