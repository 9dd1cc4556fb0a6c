package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const (
	ProviderAnthropic = "anthropic"

	defaultAnthropicMaxTokens = 4000
)

// Anthropic uses the native Messages API. System messages become the
// request's system prompt.
type Anthropic struct {
	client anthropic.Client
}

func NewAnthropic(apiKey, baseURL string, opts ...anthropicoption.RequestOption) *Anthropic {
	reqOpts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, anthropicoption.WithBaseURL(withTrailingSlash(baseURL)))
	}
	reqOpts = append(reqOpts, opts...)
	return &Anthropic{client: anthropic.NewClient(reqOpts...)}
}

func (p *Anthropic) Provider() string { return ProviderAnthropic }

func (p *Anthropic) Complete(ctx context.Context, model string, req Request) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
