package errors

import (
	"errors"
)

// Common error types for the README service
var (
	// Authentication errors
	ErrInvalidState           = errors.New("invalid oauth state")
	ErrUpstreamExchangeFailed = errors.New("upstream code exchange failed")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrInvalidCredential      = errors.New("invalid session credential")
	ErrSessionNotFound        = errors.New("session not found")

	// Generation errors
	ErrEmptyGeneration    = errors.New("empty generation")
	ErrAllModelsExhausted = errors.New("all models exhausted")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyContent       = errors.New("model returned empty content")

	// Upstream errors
	ErrUpstreamNotFound = errors.New("upstream resource not found")
)

// IsAuthError reports whether err belongs to the authentication taxonomy.
// All of these collapse to the same unauthorized response at the HTTP boundary.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrUpstreamExchangeFailed) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrSessionNotFound)
}
