// Package llm drives chat completions across an ordered list of candidate
// models, moving on to the next candidate whenever one fails or returns nothing.
package llm

import (
	"context"
	"time"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one provider-neutral completion request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// UserPrompt is a request with a single user message
func UserPrompt(prompt string, temperature float64, maxTokens int) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// Completer is a chat completion backend. It returns the first choice's
// content, which may be empty.
type Completer interface {
	Provider() string
	Complete(ctx context.Context, model string, req Request) (string, error)
}

// Candidate is one model on one provider
type Candidate struct {
	Client Completer
	Model  string
}

func (c Candidate) Provider() string {
	if c.Client == nil {
		return ""
	}
	return c.Client.Provider()
}

func (c Candidate) String() string {
	return c.Provider() + "/" + c.Model
}

type AttemptStatus string

const (
	StatusSucceeded AttemptStatus = "succeeded"
	StatusEmpty     AttemptStatus = "empty"
	StatusFailed    AttemptStatus = "failed"
	StatusTimeout   AttemptStatus = "timeout"
)

// Attempt records the outcome of calling one candidate
type Attempt struct {
	Provider string
	Model    string
	Status   AttemptStatus
	Err      error
	Duration time.Duration
}

// Trace is the ordered list of attempts made for one call
type Trace []Attempt

// Result is a successful completion
type Result struct {
	Content   string
	Candidate Candidate
	Trace     Trace
}

// MetricsRecorder observes every attempt
type MetricsRecorder interface {
	RecordAttempt(provider, model string, status AttemptStatus, duration time.Duration)
}
