package llm_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/readme-writer/llm"
	"github.com/jrsteele09/readme-writer/llm/llmfake"
	"github.com/stretchr/testify/require"
)

const chainYAML = `
primary:
  - provider: openrouter
    model: mistralai/devstral-2512:free
  - provider: anthropic
    model: claude-3-5-haiku-latest
  - provider: openrouter
    model: xiaomi/mimo-v2-flash:free
secondary:
  provider: openai
  model: gpt-4o-mini
`

func names(cands []llm.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.String())
	}
	return out
}

func TestParseChainFile(t *testing.T) {
	cf, err := llm.ParseChainFile([]byte(chainYAML))
	require.NoError(t, err)
	require.Len(t, cf.Primary, 3)
	require.Equal(t, llm.ModelSpec{Provider: "openai", Model: "gpt-4o-mini"}, *cf.Secondary)

	_, err = llm.ParseChainFile([]byte("primary: [}"))
	require.Error(t, err)

	_, err = llm.ParseChainFile([]byte("primary: []"))
	require.Error(t, err)

	_, err = llm.ParseChainFile([]byte("primary:\n  - provider: openrouter\n"))
	require.Error(t, err)
}

func TestLoadChainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainYAML), 0o600))

	cf, err := llm.LoadChainFile(path)
	require.NoError(t, err)
	require.Equal(t, "mistralai/devstral-2512:free", cf.Primary[0].Model)

	_, err = llm.LoadChainFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildChainWith(t *testing.T) {
	clients := map[string]llm.Completer{
		llm.ProviderOpenRouter: llmfake.New(llm.ProviderOpenRouter),
		llm.ProviderOpenAI:     llmfake.New(llm.ProviderOpenAI),
	}

	t.Run("env models on openrouter with openai secondary", func(t *testing.T) {
		fc, err := llm.BuildChainWith(llm.ChainSettings{
			PrimaryModels:     []string{"m1", "m2"},
			SecondaryProvider: "openai",
			SecondaryModel:    "gpt-3.5-turbo",
			Timeout:           time.Second,
		}, clients)
		require.NoError(t, err)
		require.Equal(t, []string{"openrouter/m1", "openrouter/m2", "openai/gpt-3.5-turbo"}, names(fc.Candidates()))
	})

	t.Run("secondary skipped without its key", func(t *testing.T) {
		fc, err := llm.BuildChainWith(llm.ChainSettings{
			PrimaryModels:     []string{"m1"},
			SecondaryProvider: "anthropic",
			SecondaryModel:    "claude",
			Timeout:           time.Second,
		}, clients)
		require.NoError(t, err)
		require.Equal(t, []string{"openrouter/m1"}, names(fc.Candidates()))
	})

	t.Run("chain file", func(t *testing.T) {
		cf, err := llm.ParseChainFile([]byte(chainYAML))
		require.NoError(t, err)

		fc, err := llm.BuildChainWith(llm.ChainSettings{File: cf, PrimaryModels: []string{"ignored"}, Timeout: time.Second}, clients)
		require.NoError(t, err)
		require.Equal(t, []string{
			"openrouter/mistralai/devstral-2512:free",
			"openrouter/xiaomi/mimo-v2-flash:free",
			"openai/gpt-4o-mini",
		}, names(fc.Candidates()))
	})

	t.Run("no usable providers", func(t *testing.T) {
		_, err := llm.BuildChainWith(llm.ChainSettings{PrimaryModels: []string{"m1"}, Timeout: time.Second}, nil)
		require.Error(t, err)
	})
}

func TestChainSettings_Providers(t *testing.T) {
	s := llm.ChainSettings{OpenRouterAPIKey: "a", AnthropicAPIKey: "b"}
	providers := s.Providers()
	require.Len(t, providers, 2)
	require.Contains(t, providers, llm.ProviderOpenRouter)
	require.Contains(t, providers, llm.ProviderAnthropic)
}
