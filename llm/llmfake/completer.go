// Package llmfake provides a scripted llm.Completer for tests
package llmfake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/readme-writer/llm"
)

// Response is one scripted reply. Delay blocks until it elapses or the context ends.
type Response struct {
	Content string
	Err     error
	Delay   time.Duration
}

type Call struct {
	Model   string
	Request llm.Request
}

// Completer replays scripted responses per model. Once a model's script is
// used up its last response repeats.
type Completer struct {
	provider string

	mu      sync.Mutex
	scripts map[string][]Response
	calls   []Call
}

var _ llm.Completer = (*Completer)(nil)

func New(provider string) *Completer {
	return &Completer{provider: provider, scripts: make(map[string][]Response)}
}

// On scripts the responses for model
func (c *Completer) On(model string, responses ...Response) *Completer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scripts[model] = append(c.scripts[model], responses...)
	return c
}

func (c *Completer) Provider() string { return c.provider }

func (c *Completer) Complete(ctx context.Context, model string, req llm.Request) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Model: model, Request: req})
	script := c.scripts[model]
	if len(script) == 0 {
		c.mu.Unlock()
		return "", fmt.Errorf("llmfake: no response scripted for %s", model)
	}
	resp := script[0]
	if len(script) > 1 {
		c.scripts[model] = script[1:]
	}
	c.mu.Unlock()

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return resp.Content, resp.Err
}

func (c *Completer) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallCount returns how often model was called
func (c *Completer) CallCount(model string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Model == model {
			n++
		}
	}
	return n
}
