package config_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_CLIENT_ID", "client")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")
	t.Setenv("GITHUB_CALLBACK_URL", "http://localhost:5000/auth/github/callback")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
}

func TestValidate(t *testing.T) {
	t.Run("all required present", func(t *testing.T) {
		setRequired(t)
		require.NoError(t, config.Validate(config.New()))
	})

	t.Run("missing github settings", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GITHUB_CLIENT_ID", "")
		t.Setenv("GITHUB_CLIENT_SECRET", "")
		err := config.Validate(config.New())
		require.Error(t, err)
		require.Contains(t, err.Error(), "GITHUB_CLIENT_ID")
		require.Contains(t, err.Error(), "GITHUB_CLIENT_SECRET")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "")
		err := config.Validate(config.New())
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("production key pair needs key file", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_ALGORITHM", "es256")
		t.Setenv("JWT_PRIVATE_KEY_FILE", "")
		err := config.Validate(config.New())
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_PRIVATE_KEY_FILE")
		require.NotContains(t, err.Error(), "JWT_SECRET")

		t.Setenv("JWT_PRIVATE_KEY_FILE", "/etc/readme/key.pem")
		require.NoError(t, config.Validate(config.New()))
	})

	t.Run("non positive candidate timeout", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AI_CANDIDATE_TIMEOUT", "0s")
		require.Error(t, config.Validate(config.New()))
	})
}

func TestEnvVars(t *testing.T) {
	t.Run("port gets colon prefix", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		require.Equal(t, ":8080", config.New().GetPort())
	})

	t.Run("client url trailing slash trimmed", func(t *testing.T) {
		t.Setenv("CLIENT_URL", "https://app.example.com/")
		require.Equal(t, "https://app.example.com", config.New().GetClientURL())
	})
}

func TestAIConfig(t *testing.T) {
	t.Run("default model order", func(t *testing.T) {
		t.Setenv("AI_MODELS", "")
		require.Equal(t, config.DefaultPrimaryModels, config.New().GetPrimaryModels())
	})

	t.Run("model override list", func(t *testing.T) {
		t.Setenv("AI_MODELS", "a/one, b/two ,")
		require.Equal(t, []string{"a/one", "b/two"}, config.New().GetPrimaryModels())
	})

	t.Run("anthropic secondary", func(t *testing.T) {
		t.Setenv("AI_SECONDARY_PROVIDER", "Anthropic")
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("AI_SECONDARY_MODEL", "")
		c := config.New()
		require.Equal(t, "anthropic", c.GetSecondaryProvider())
		require.Equal(t, "sk-ant", c.GetSecondaryAPIKey())
		require.NotEmpty(t, c.GetSecondaryModel())
	})

	t.Run("bad duration falls back", func(t *testing.T) {
		t.Setenv("AI_CANDIDATE_TIMEOUT", "soon")
		require.Equal(t, 45*time.Second, config.New().GetCandidateTimeout())
	})
}

func TestSecurityConfig(t *testing.T) {
	t.Run("samesite none needs secure", func(t *testing.T) {
		t.Setenv("COOKIE_SAMESITE", "none")
		t.Setenv("COOKIE_SECURE", "false")
		require.Equal(t, http.SameSiteLaxMode, config.New().GetCookieSameSite())

		t.Setenv("COOKIE_SECURE", "true")
		require.Equal(t, http.SameSiteNoneMode, config.New().GetCookieSameSite())
	})

	t.Run("forwarded headers untrusted by default", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "")
		require.False(t, config.New().GetTrustProxy())

		t.Setenv("TRUST_PROXY", "true")
		require.True(t, config.New().GetTrustProxy())
	})

	t.Run("cors falls back to client url", func(t *testing.T) {
		t.Setenv("CORS_ORIGIN", "")
		t.Setenv("CLIENT_URL", "https://app.example.com")
		origins := config.New().GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("https://app.example.com"))
		require.False(t, origins.IsAllowedOrigin("https://evil.example.com"))
	})
}
