package server_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/jrsteele09/readme-writer/llm/llmfake"
	"github.com/jrsteele09/readme-writer/server"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	l := server.NewRateLimiter("test", config.RateLimit{Requests: 2, Window: time.Minute}, "slow down")

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))

	// Keys are independent
	require.True(t, l.Allow("b"))
	require.Equal(t, 2, l.Len())
}

func TestRateLimiter_ZeroConfig(t *testing.T) {
	l := server.NewRateLimiter("test", config.RateLimit{}, "slow down")
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
}

func TestRateLimitMiddleware(t *testing.T) {
	f := setupTestFixture(t, withRateLimiting)
	f.primary.On(primaryModel, llmfake.Response{Content: "styled"})

	limit := config.New().GetAIRateLimit()
	for i := 0; i < limit.Requests; i++ {
		resp := f.do(t, http.MethodPost, server.RouteReadmeBeautify, `{"readme":"# Title"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}

	resp := f.do(t, http.MethodPost, server.RouteReadmeBeautify, `{"readme":"# Title"}`)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "120", resp.Header.Get("Retry-After"))
	body := decode(t, resp)
	require.False(t, body.Success)
	require.NotEmpty(t, body.Message)
	require.Len(t, f.primary.Calls(), limit.Requests)

	// Other limiters keep their own budget
	resp = f.do(t, http.MethodGet, server.RouteAuthGitHub, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func (f *testFixture) beautifyFrom(t *testing.T, forwardedFor string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, f.server.URL+server.RouteReadmeBeautify, strings.NewReader(`{"readme":"# Title"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRateLimitMiddleware_ForwardedFor(t *testing.T) {
	t.Run("spoofed header shares the peer's bucket", func(t *testing.T) {
		f := setupTestFixture(t, withRateLimiting)
		f.primary.On(primaryModel, llmfake.Response{Content: "styled"})

		limit := config.New().GetAIRateLimit()
		allowed := 0
		for i := 0; i < 50; i++ {
			if f.beautifyFrom(t, fmt.Sprintf("198.51.100.%d", i)).StatusCode == http.StatusOK {
				allowed++
			}
		}
		require.Equal(t, limit.Requests, allowed)
		require.Len(t, f.primary.Calls(), limit.Requests)
	})

	t.Run("trusted proxy keys by forwarded client", func(t *testing.T) {
		f := setupTestFixture(t, withRateLimiting, withTrustedProxy)
		f.primary.On(primaryModel, llmfake.Response{Content: "styled"})

		limit := config.New().GetAIRateLimit()
		for i := 0; i < limit.Requests; i++ {
			require.Equal(t, http.StatusOK, f.beautifyFrom(t, "198.51.100.1, 10.0.0.1").StatusCode)
		}
		require.Equal(t, http.StatusTooManyRequests, f.beautifyFrom(t, "198.51.100.1").StatusCode)
		require.Equal(t, http.StatusOK, f.beautifyFrom(t, "198.51.100.2").StatusCode)
	})
}
