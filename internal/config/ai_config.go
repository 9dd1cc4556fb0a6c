package config

import (
	"strings"
	"time"
)

const (
	openRouterAPIKeyVar  = "OPENROUTER_API_KEY"
	openRouterBaseURLVar = "OPENROUTER_BASE_URL"
	openAIAPIKeyVar      = "OPENAI_API_KEY"
	openAIBaseURLVar     = "OPENAI_BASE_URL"
	anthropicAPIKeyVar   = "ANTHROPIC_API_KEY"
	secondaryProviderVar = "AI_SECONDARY_PROVIDER"
	secondaryModelVar    = "AI_SECONDARY_MODEL"
	modelsVar            = "AI_MODELS"
	modelsFileVar        = "AI_MODELS_FILE"
	candidateTimeoutVar  = "AI_CANDIDATE_TIMEOUT"
	maxTokensVar         = "AI_MAX_TOKENS"
)

// DefaultPrimaryModels are tried in order against the OpenRouter API
var DefaultPrimaryModels = []string{
	"mistralai/devstral-2512:free",
	"qwen/qwen3-next-80b-a3b-instruct:free",
	"nvidia/nemotron-nano-9b-v2:free",
	"openai/gpt-oss-120b:free",
	"xiaomi/mimo-v2-flash:free",
}

type AIConfig interface {
	GetOpenRouterAPIKey() string
	GetOpenRouterBaseURL() string
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetAnthropicAPIKey() string
	GetSecondaryProvider() string
	GetSecondaryModel() string
	GetSecondaryAPIKey() string
	GetPrimaryModels() []string
	GetModelsFile() string
	GetCandidateTimeout() time.Duration
	GetMaxTokens() int
}

type AI struct{}

var _ AIConfig = AI{}

func (AI) GetOpenRouterAPIKey() string {
	return GetEnv(openRouterAPIKeyVar, "")
}

func (AI) GetOpenRouterBaseURL() string {
	return GetEnv(openRouterBaseURLVar, "https://openrouter.ai/api/v1")
}

func (AI) GetOpenAIAPIKey() string {
	return GetEnv(openAIAPIKeyVar, "")
}

// GetOpenAIBaseURL is empty unless overridden, the SDK default is used then
func (AI) GetOpenAIBaseURL() string {
	return GetEnv(openAIBaseURLVar, "")
}

func (AI) GetAnthropicAPIKey() string {
	return GetEnv(anthropicAPIKeyVar, "")
}

// GetSecondaryProvider is "openai" or "anthropic"
func (AI) GetSecondaryProvider() string {
	return strings.ToLower(GetEnv(secondaryProviderVar, "openai"))
}

func (a AI) GetSecondaryModel() string {
	if a.GetSecondaryProvider() == "anthropic" {
		return GetEnv(secondaryModelVar, "claude-3-5-haiku-latest")
	}
	return GetEnv(secondaryModelVar, "gpt-3.5-turbo")
}

// GetSecondaryAPIKey returns the key of the configured secondary provider; empty disables the secondary attempt
func (a AI) GetSecondaryAPIKey() string {
	if a.GetSecondaryProvider() == "anthropic" {
		return a.GetAnthropicAPIKey()
	}
	return a.GetOpenAIAPIKey()
}

func (AI) GetPrimaryModels() []string {
	if models := getList(modelsVar); len(models) > 0 {
		return models
	}
	return append([]string(nil), DefaultPrimaryModels...)
}

func (AI) GetModelsFile() string {
	return GetEnv(modelsFileVar, "")
}

func (AI) GetCandidateTimeout() time.Duration {
	return getDuration(candidateTimeoutVar, 45*time.Second)
}

func (AI) GetMaxTokens() int {
	return getInt(maxTokensVar, 4000)
}
