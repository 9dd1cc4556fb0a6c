package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/openai/openai-go"
)

// ProviderError is a failure of a single candidate
type ProviderError struct {
	Provider   string
	Model      string
	StatusCode int
	Err        error
}

// NewProviderError wraps err and extracts an HTTP status from SDK errors
func NewProviderError(provider, model string, err error) *ProviderError {
	pe := &ProviderError{Provider: provider, Model: model, Err: err}

	var oaiErr *openai.Error
	var antErr *anthropic.Error
	var existing *ProviderError
	switch {
	case errors.As(err, &existing):
		pe.StatusCode = existing.StatusCode
	case errors.As(err, &oaiErr):
		pe.StatusCode = oaiErr.StatusCode
	case errors.As(err, &antErr):
		pe.StatusCode = antErr.StatusCode
	}
	return pe
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s/%s: status %d: %v", e.Provider, e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s/%s: %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when every candidate has been tried without success
type ExhaustedError struct {
	Trace Trace
	// Last is the most recently recorded failure
	Last error
}

func (e *ExhaustedError) Error() string {
	tried := make([]string, 0, len(e.Trace))
	for _, a := range e.Trace {
		tried = append(tried, a.Provider+"/"+a.Model+"="+string(a.Status))
	}
	msg := fmt.Sprintf("%v after %d attempts [%s]", apperrors.ErrAllModelsExhausted, len(e.Trace), strings.Join(tried, ", "))
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *ExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{apperrors.ErrAllModelsExhausted}
	}
	return []error{apperrors.ErrAllModelsExhausted, e.Last}
}
