package config

import (
	"strings"
	"time"
)

const (
	githubClientIDVar     = "GITHUB_CLIENT_ID"
	githubClientSecretVar = "GITHUB_CLIENT_SECRET"
	githubCallbackURLVar  = "GITHUB_CALLBACK_URL"
	githubAPIURLVar       = "GITHUB_API_URL"
	githubHTTPTimeoutVar  = "GITHUB_HTTP_TIMEOUT"
	jwtSecretVar          = "JWT_SECRET"
	jwtExpiresInVar       = "JWT_EXPIRES_IN"
	jwtAlgorithmVar       = "JWT_ALGORITHM"
	jwtPrivateKeyFileVar  = "JWT_PRIVATE_KEY_FILE"
)

type OAuthConfig interface {
	GetGitHubClientID() string
	GetGitHubClientSecret() string
	GetGitHubCallbackURL() string
	GetGitHubAPIURL() string
	GetGitHubHTTPTimeout() time.Duration
	GetGitHubScopes() []string
	GetStateCookieTTL() time.Duration
	GetJWTSecret() string
	GetJWTAlgorithm() string
	GetJWTPrivateKeyFile() string
	GetSessionExpiry() time.Duration
	GetSessionCookieTTL() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetGitHubClientID() string {
	return GetEnv(githubClientIDVar, "")
}

func (OAuth) GetGitHubClientSecret() string {
	return GetEnv(githubClientSecretVar, "")
}

func (OAuth) GetGitHubCallbackURL() string {
	return GetEnv(githubCallbackURLVar, "")
}

func (OAuth) GetGitHubAPIURL() string {
	return GetEnv(githubAPIURLVar, "https://api.github.com")
}

func (OAuth) GetGitHubHTTPTimeout() time.Duration {
	return getDuration(githubHTTPTimeoutVar, 10*time.Second)
}

func (OAuth) GetGitHubScopes() []string {
	return []string{"read:user", "repo"}
}

func (OAuth) GetStateCookieTTL() time.Duration {
	return 10 * time.Minute
}

// GetJWTSecret falls back to a development secret; Validate rejects the fallback in production
func (OAuth) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, "dev-secret")
}

// GetJWTAlgorithm is HS256, RS256 or ES256
func (OAuth) GetJWTAlgorithm() string {
	return strings.ToUpper(GetEnv(jwtAlgorithmVar, "HS256"))
}

func (OAuth) GetJWTPrivateKeyFile() string {
	return GetEnv(jwtPrivateKeyFileVar, "")
}

func (OAuth) GetSessionExpiry() time.Duration {
	return getDuration(jwtExpiresInVar, 7*24*time.Hour)
}

func (OAuth) GetSessionCookieTTL() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}
