package config

import (
	"net/http"
	"strings"
	"time"
)

const (
	cookieSecureVar     = "COOKIE_SECURE"
	cookieSameSiteVar   = "COOKIE_SAMESITE"
	rateLimitEnabledVar = "RATE_LIMIT_ENABLED"
	trustProxyVar       = "TRUST_PROXY"
)

// RateLimit allows Requests per Window for a single client key
type RateLimit struct {
	Requests int
	Window   time.Duration
}

type SecurityConfig interface {
	GetCookieSecure() bool
	GetCookieSameSite() http.SameSite
	GetEnableRateLimiting() bool
	GetTrustProxy() bool
	GetAuthRateLimit() RateLimit
	GetAIRateLimit() RateLimit
	GetAPIRateLimit() RateLimit
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetCookieSecure() bool {
	return getBool(cookieSecureVar, false)
}

// GetCookieSameSite returns None only when cookies are also Secure, browsers reject the combination otherwise
func (s Security) GetCookieSameSite() http.SameSite {
	switch strings.ToLower(GetEnv(cookieSameSiteVar, "lax")) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		if s.GetCookieSecure() {
			return http.SameSiteNoneMode
		}
	}
	return http.SameSiteLaxMode
}

func (Security) GetEnableRateLimiting() bool {
	return getBool(rateLimitEnabledVar, true)
}

// GetTrustProxy reports whether X-Forwarded-For names the client. Only enable
// it behind a proxy that overwrites the header.
func (Security) GetTrustProxy() bool {
	return getBool(trustProxyVar, false)
}

func (Security) GetAuthRateLimit() RateLimit {
	return RateLimit{Requests: 20, Window: 15 * time.Minute}
}

func (Security) GetAIRateLimit() RateLimit {
	return RateLimit{Requests: 5, Window: 10 * time.Minute}
}

func (Security) GetAPIRateLimit() RateLimit {
	return RateLimit{Requests: 100, Window: 15 * time.Minute}
}
