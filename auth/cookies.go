package auth

import (
	"net/http"
	"time"
)

const (
	// StateCookieName carries the CSRF nonce between login and callback
	StateCookieName = "oauth_state"
	// SessionCookieName carries the signed session credential
	SessionCookieName = "auth_token"
)

// CookiePolicy holds the attributes shared by every cookie the flow emits
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

func (p CookiePolicy) cookie(name, value string, ttl time.Duration) *http.Cookie {
	sameSite := p.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	// Browsers drop SameSite=None cookies without Secure
	if sameSite == http.SameSiteNoneMode && !p.Secure {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: sameSite,
		MaxAge:   int(ttl / time.Second),
	}
}

func (p CookiePolicy) expired(name string) *http.Cookie {
	c := p.cookie(name, "", 0)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
