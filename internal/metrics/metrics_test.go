package metrics_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/readme-writer/internal/metrics"
	"github.com/jrsteele09/readme-writer/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg, nil)

	c.RecordAttempt("openrouter", "m1", llm.StatusFailed, time.Second)
	c.RecordAttempt("openrouter", "m1", llm.StatusFailed, time.Second)
	c.RecordAttempt("openai", "gpt", llm.StatusSucceeded, 2*time.Second)

	count, err := testutil.GatherAndCount(reg, "readme_llm_attempts_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	expected := `
# HELP readme_llm_attempts_total Model attempts by provider, model and outcome
# TYPE readme_llm_attempts_total counter
readme_llm_attempts_total{model="gpt",outcome="succeeded",provider="openai"} 1
readme_llm_attempts_total{model="m1",outcome="failed",provider="openrouter"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "readme_llm_attempts_total"))
}

func TestCollector_SessionsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	active := 3
	metrics.NewCollector(reg, func() int { return active })

	expected := `
# HELP readme_active_sessions Sessions currently held in the session store
# TYPE readme_active_sessions gauge
readme_active_sessions 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "readme_active_sessions"))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg, nil)
	c.RecordHTTPStatus(http.MethodGet, http.StatusOK)

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `readme_http_requests_total{method="GET",status_code="200"} 1`)
}

func TestCollector_RecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg, nil)

	c.RecordHTTPStatus(http.MethodPost, http.StatusOK)
	for i := 0; i < 20; i++ {
		c.RecordHTTPStatus(fmt.Sprintf("X-METHOD-%d", i), http.StatusNotFound)
	}
	c.RecordHTTPStatus("get", http.StatusNotFound)

	expected := `
# HELP readme_http_requests_total HTTP responses by method and status code
# TYPE readme_http_requests_total counter
readme_http_requests_total{method="POST",status_code="200"} 1
readme_http_requests_total{method="other",status_code="404"} 21
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "readme_http_requests_total"))
}
