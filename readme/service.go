// Package readme generates and restyles README documents through the model
// fallback chain.
package readme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/jrsteele09/readme-writer/llm"
	"github.com/jrsteele09/readme-writer/prompt"
	"github.com/rs/zerolog/log"
)

const (
	GenerateTemperature = 0.6
	RestyleTemperature  = 0.2
	DefaultMaxTokens    = 4000
)

// Completer is satisfied by *llm.FallbackClient
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Result, error)
}

type Service struct {
	client    Completer
	maxTokens int
}

func NewService(client Completer, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{client: client, maxTokens: maxTokens}
}

// Generate writes a README for the repository described by rc
func (s *Service) Generate(ctx context.Context, rc prompt.RepoContext) (string, error) {
	p, err := prompt.BuildReadme(rc)
	if err != nil {
		return "", fmt.Errorf("[readme Generate] %w", err)
	}

	res, err := s.client.Complete(ctx, llm.UserPrompt(p, GenerateTemperature, s.maxTokens))
	if err != nil {
		return "", fmt.Errorf("[readme Generate] %s/%s: %w", rc.Owner, rc.Repo, generationError(err))
	}

	log.Info().Str("repo", rc.Owner+"/"+rc.Repo).Str("model", res.Candidate.String()).Msg("README generated")
	return res.Content, nil
}

// Restyle asks for a presentation-only rewrite of text. Blank input is
// rejected without calling any model.
func (s *Service) Restyle(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("[readme Restyle] readme content is required: %w", apperrors.ErrInvalidInput)
	}

	p, err := prompt.BuildRestyle(trimmed)
	if err != nil {
		return "", fmt.Errorf("[readme Restyle] %w", err)
	}

	res, err := s.client.Complete(ctx, llm.UserPrompt(p, RestyleTemperature, s.maxTokens))
	if err != nil {
		return "", fmt.Errorf("[readme Restyle] %w", generationError(err))
	}

	log.Info().Str("model", res.Candidate.String()).Msg("README restyled")
	return strings.TrimSpace(res.Content), nil
}

// generationError maps chain exhaustion onto ErrEmptyGeneration while keeping
// the original chain for errors.Is
func generationError(err error) error {
	if errors.Is(err, apperrors.ErrAllModelsExhausted) {
		return fmt.Errorf("%w: %w", apperrors.ErrEmptyGeneration, err)
	}
	return err
}
