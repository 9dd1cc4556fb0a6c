package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/rs/zerolog/log"
)

// FallbackClient tries its primary candidates in order, then the secondary
// candidate once. The first non-blank content wins. Attempts are sequential
// and there is no delay between them.
type FallbackClient struct {
	primary   []Candidate
	secondary *Candidate
	timeout   time.Duration
	metrics   MetricsRecorder
}

type FallbackOption func(*FallbackClient)

// WithSecondary sets the candidate tried after every primary candidate failed
func WithSecondary(c Candidate) FallbackOption {
	return func(fc *FallbackClient) { fc.secondary = &c }
}

func WithMetrics(m MetricsRecorder) FallbackOption {
	return func(fc *FallbackClient) { fc.metrics = m }
}

// NewFallbackClient requires a positive per-candidate timeout and at least one candidate
func NewFallbackClient(primary []Candidate, timeout time.Duration, opts ...FallbackOption) (*FallbackClient, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("[llm NewFallbackClient] candidate timeout must be positive, got %s", timeout)
	}
	fc := &FallbackClient{
		primary: append([]Candidate(nil), primary...),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(fc)
	}
	for _, c := range fc.Candidates() {
		if c.Client == nil || c.Model == "" {
			return nil, fmt.Errorf("[llm NewFallbackClient] candidate %q is incomplete", c.String())
		}
	}
	if len(fc.Candidates()) == 0 {
		return nil, fmt.Errorf("[llm NewFallbackClient] no candidates configured")
	}
	return fc, nil
}

// Candidates returns the full chain in the order it is tried
func (fc *FallbackClient) Candidates() []Candidate {
	out := append([]Candidate(nil), fc.primary...)
	if fc.secondary != nil {
		out = append(out, *fc.secondary)
	}
	return out
}

// Complete runs the chain. When every candidate fails the error is an
// *ExhaustedError matching ErrAllModelsExhausted and the last failure.
// A cancelled ctx stops the chain and returns the context error.
func (fc *FallbackClient) Complete(ctx context.Context, req Request) (*Result, error) {
	var trace Trace
	var lastErr error

	for _, cand := range fc.Candidates() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("[llm Complete] stopped after %d attempts: %w", len(trace), err)
		}

		content, attempt := fc.attempt(ctx, cand, req)
		trace = append(trace, attempt)

		if attempt.Status == StatusSucceeded {
			log.Info().Str("provider", attempt.Provider).Str("model", attempt.Model).Int("attempts", len(trace)).Msg("AI request succeeded")
			return &Result{Content: content, Candidate: cand, Trace: trace}, nil
		}
		lastErr = attempt.Err
	}

	log.Error().Int("attempts", len(trace)).Msg("All AI models failed to respond")
	return nil, &ExhaustedError{Trace: trace, Last: lastErr}
}

func (fc *FallbackClient) attempt(ctx context.Context, cand Candidate, req Request) (string, Attempt) {
	attemptCtx, cancel := context.WithTimeout(ctx, fc.timeout)
	defer cancel()

	log.Debug().Str("provider", cand.Provider()).Str("model", cand.Model).Msg("Attempting AI generation")

	start := time.Now()
	content, err := cand.Client.Complete(attemptCtx, cand.Model, req)
	attempt := Attempt{
		Provider: cand.Provider(),
		Model:    cand.Model,
		Duration: time.Since(start),
	}

	switch {
	case err != nil:
		attempt.Status = StatusFailed
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			attempt.Status = StatusTimeout
		}
		attempt.Err = NewProviderError(attempt.Provider, attempt.Model, err)
	case strings.TrimSpace(content) == "":
		attempt.Status = StatusEmpty
		attempt.Err = NewProviderError(attempt.Provider, attempt.Model, apperrors.ErrEmptyContent)
	default:
		attempt.Status = StatusSucceeded
	}

	if fc.metrics != nil {
		fc.metrics.RecordAttempt(attempt.Provider, attempt.Model, attempt.Status, attempt.Duration)
	}
	if attempt.Err != nil {
		var pe *ProviderError
		errors.As(attempt.Err, &pe)
		log.Warn().
			Str("provider", attempt.Provider).
			Str("model", attempt.Model).
			Str("status", string(attempt.Status)).
			Int("status_code", pe.StatusCode).
			Err(pe.Err).
			Msg("Model attempt failed, trying next")
	}
	return content, attempt
}
