package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ModelSpec names a model on a provider
type ModelSpec struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// ChainFile is the YAML form of a fallback chain:
//
//	primary:
//	  - provider: openrouter
//	    model: mistralai/devstral-2512:free
//	secondary:
//	  provider: openai
//	  model: gpt-3.5-turbo
type ChainFile struct {
	Primary   []ModelSpec `yaml:"primary"`
	Secondary *ModelSpec  `yaml:"secondary,omitempty"`
}

// ParseChainFile decodes and validates a chain file
func ParseChainFile(data []byte) (*ChainFile, error) {
	var cf ChainFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("[llm ParseChainFile] invalid yaml: %w", err)
	}
	specs := append([]ModelSpec(nil), cf.Primary...)
	if cf.Secondary != nil {
		specs = append(specs, *cf.Secondary)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("[llm ParseChainFile] no models listed")
	}
	for i, s := range specs {
		if s.Provider == "" || s.Model == "" {
			return nil, fmt.Errorf("[llm ParseChainFile] entry %d needs both provider and model", i)
		}
	}
	return &cf, nil
}

func LoadChainFile(path string) (*ChainFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[llm LoadChainFile] %w", err)
	}
	return ParseChainFile(data)
}

// ChainSettings is what BuildChain needs to know about providers and models
type ChainSettings struct {
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Referer           string
	Title             string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	AnthropicAPIKey  string
	AnthropicBaseURL string

	// Used when File is nil. Primary models run on OpenRouter.
	PrimaryModels     []string
	SecondaryProvider string
	SecondaryModel    string

	File *ChainFile

	Timeout time.Duration
	Metrics MetricsRecorder
}

// Providers returns a client for every provider that has an API key
func (s ChainSettings) Providers() map[string]Completer {
	clients := map[string]Completer{}
	if s.OpenRouterAPIKey != "" {
		clients[ProviderOpenRouter] = NewOpenRouter(s.OpenRouterAPIKey, s.OpenRouterBaseURL, s.Referer, s.Title)
	}
	if s.OpenAIAPIKey != "" {
		clients[ProviderOpenAI] = NewOpenAICompatible(ProviderOpenAI, s.OpenAIAPIKey, s.OpenAIBaseURL)
	}
	if s.AnthropicAPIKey != "" {
		clients[ProviderAnthropic] = NewAnthropic(s.AnthropicAPIKey, s.AnthropicBaseURL)
	}
	return clients
}

// BuildChain builds the fallback client. Models whose provider has no API
// key are skipped with a warning, so the secondary attempt only exists when its
// key is set.
func BuildChain(s ChainSettings) (*FallbackClient, error) {
	return buildChain(s, s.Providers())
}

// BuildChainWith is BuildChain with caller supplied provider clients
func BuildChainWith(s ChainSettings, clients map[string]Completer) (*FallbackClient, error) {
	return buildChain(s, clients)
}

func buildChain(s ChainSettings, clients map[string]Completer) (*FallbackClient, error) {
	primarySpecs, secondarySpec := s.specs()

	var primary []Candidate
	for _, spec := range primarySpecs {
		if c, ok := resolve(spec, clients); ok {
			primary = append(primary, c)
		}
	}

	var opts []FallbackOption
	if secondarySpec != nil {
		if c, ok := resolve(*secondarySpec, clients); ok {
			opts = append(opts, WithSecondary(c))
		}
	}
	if s.Metrics != nil {
		opts = append(opts, WithMetrics(s.Metrics))
	}

	fc, err := NewFallbackClient(primary, s.Timeout, opts...)
	if err != nil {
		return nil, fmt.Errorf("[llm BuildChain] %w", err)
	}
	return fc, nil
}

func (s ChainSettings) specs() ([]ModelSpec, *ModelSpec) {
	if s.File != nil {
		return s.File.Primary, s.File.Secondary
	}
	primary := make([]ModelSpec, 0, len(s.PrimaryModels))
	for _, m := range s.PrimaryModels {
		primary = append(primary, ModelSpec{Provider: ProviderOpenRouter, Model: m})
	}
	var secondary *ModelSpec
	if s.SecondaryProvider != "" && s.SecondaryModel != "" {
		secondary = &ModelSpec{Provider: s.SecondaryProvider, Model: s.SecondaryModel}
	}
	return primary, secondary
}

func resolve(spec ModelSpec, clients map[string]Completer) (Candidate, bool) {
	client, ok := clients[strings.ToLower(spec.Provider)]
	if !ok {
		log.Warn().Str("provider", spec.Provider).Str("model", spec.Model).Msg("No API key for provider, skipping model")
		return Candidate{}, false
	}
	return Candidate{Client: client, Model: spec.Model}, true
}
