package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	SecurityConfig
	AIConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetClientURL() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	Security
	AI
}

func New() Config {
	return mainConfig{}
}

// Validate reports every required setting that is missing for the current environment.
func Validate(c Config) error {
	var missing []string
	if c.GetGitHubClientID() == "" {
		missing = append(missing, githubClientIDVar)
	}
	if c.GetGitHubClientSecret() == "" {
		missing = append(missing, githubClientSecretVar)
	}
	if c.GetGitHubCallbackURL() == "" {
		missing = append(missing, githubCallbackURLVar)
	}
	if c.IsProduction() {
		if c.GetJWTAlgorithm() == "HS256" && GetEnv(jwtSecretVar, "") == "" {
			missing = append(missing, jwtSecretVar)
		}
		if c.GetJWTAlgorithm() != "HS256" && c.GetJWTPrivateKeyFile() == "" {
			missing = append(missing, jwtPrivateKeyFileVar)
		}
	}
	if c.GetOpenRouterAPIKey() == "" && c.GetModelsFile() == "" {
		missing = append(missing, openRouterAPIKeyVar)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.GetCandidateTimeout() <= 0 {
		return errors.New(candidateTimeoutVar + " must be positive")
	}
	return nil
}
