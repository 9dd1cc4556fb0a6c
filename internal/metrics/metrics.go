// Package metrics exposes Prometheus metrics for model attempts and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/readme-writer/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements llm.MetricsRecorder and records request outcomes
type Collector struct {
	attempts        *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	sessions        prometheus.GaugeFunc
}

var _ llm.MetricsRecorder = (*Collector)(nil)

// NewCollector registers the metrics on reg. activeSessions may be nil.
func NewCollector(reg prometheus.Registerer, activeSessions func() int) *Collector {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readme_llm_attempts_total",
			Help: "Model attempts by provider, model and outcome",
		}, []string{"provider", "model", "outcome"}),
		attemptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "readme_llm_attempt_duration_seconds",
			Help:    "Duration of model attempts in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readme_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
	}
	reg.MustRegister(c.attempts, c.attemptDuration, c.httpRequests)

	if activeSessions != nil {
		c.sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "readme_active_sessions",
			Help: "Sessions currently held in the session store",
		}, func() float64 { return float64(activeSessions()) })
		reg.MustRegister(c.sessions)
	}
	return c
}

func (c *Collector) RecordAttempt(provider, model string, status llm.AttemptStatus, duration time.Duration) {
	c.attempts.WithLabelValues(provider, model, string(status)).Inc()
	c.attemptDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordHTTPStatus counts a response. Methods outside the standard set are
// recorded as "other" so clients cannot grow the label set.
func (c *Collector) RecordHTTPStatus(method string, statusCode int) {
	c.httpRequests.WithLabelValues(methodLabel(method), strconv.Itoa(statusCode)).Inc()
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

func methodLabel(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// Handler serves the registry for scraping
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
