package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
)

// OpenAICompatible speaks the OpenAI chat completions API. OpenRouter and
// OpenAI proper both go through it.
type OpenAICompatible struct {
	name   string
	client openai.Client
}

// NewOpenAICompatible builds a client for baseURL. SDK retries are disabled,
// the fallback chain decides what to try next.
func NewOpenAICompatible(name, apiKey, baseURL string, opts ...option.RequestOption) *OpenAICompatible {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(withTrailingSlash(baseURL)))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAICompatible{
		name:   name,
		client: openai.NewClient(reqOpts...),
	}
}

// NewOpenRouter sets the attribution headers OpenRouter expects
func NewOpenRouter(apiKey, baseURL, referer, title string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	return NewOpenAICompatible(ProviderOpenRouter, apiKey, baseURL,
		option.WithHeader("HTTP-Referer", referer),
		option.WithHeader("X-Title", title),
	)
}

func (p *OpenAICompatible) Provider() string { return p.name }

func (p *OpenAICompatible) Complete(ctx context.Context, model string, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    p.buildMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
		TopP:        openai.Float(1),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAICompatible) buildMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}

// Request paths are resolved relative to the base URL, so a missing trailing
// slash would drop its last segment
func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
