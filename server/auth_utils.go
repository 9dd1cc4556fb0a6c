package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/readme-writer/auth"
)

type ContextKey string

// ContextKeySession stores the *auth.Session of an authenticated request
const ContextKeySession ContextKey = "session"

// setCookie writes c, adding Secure when the request arrived over https
func (s *Server) setCookie(w http.ResponseWriter, r *http.Request, c *http.Cookie) {
	if c == nil {
		return
	}
	if getScheme(r) == "https" {
		c.Secure = true
	}
	http.SetCookie(w, c)
}

// credentialFromRequest reads a bearer credential first, then the session cookie
func credentialFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(auth.SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionFromContext(ctx context.Context) (*auth.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(*auth.Session)
	return sess, ok && sess != nil
}
