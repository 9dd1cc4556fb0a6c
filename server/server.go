package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/readme-writer/auth"
	"github.com/jrsteele09/readme-writer/github"
	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/jrsteele09/readme-writer/internal/metrics"
	"github.com/jrsteele09/readme-writer/prompt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Generator writes and restyles README documents
type Generator interface {
	Generate(ctx context.Context, rc prompt.RepoContext) (string, error)
	Restyle(ctx context.Context, text string) (string, error)
}

// RepoCollector gathers prompt inputs for a repository
type RepoCollector interface {
	Collect(ctx context.Context, accessToken, owner, repo string) (*prompt.RepoContext, error)
}

// RepoBrowser lists repositories and trees for the repository picker
type RepoBrowser interface {
	ListRepos(ctx context.Context, accessToken string) ([]github.Repository, error)
	GetRepo(ctx context.Context, accessToken, owner, repo string) (*github.Repository, error)
	GetTree(ctx context.Context, accessToken, owner, repo, ref string) ([]github.TreeEntry, error)
}

type Dependencies struct {
	Flow      *auth.Flow
	Readme    Generator
	Collector RepoCollector
	Repos     RepoBrowser

	// Optional. /metrics is only served when Gatherer is set.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

type Server struct {
	env       string
	mux       *http.ServeMux
	handler   http.HandlerFunc
	routes    []string
	config    config.Config
	flow      *auth.Flow
	readme    Generator
	collector RepoCollector
	repos     RepoBrowser
	metrics   *metrics.Collector
	gatherer  prometheus.Gatherer

	trustProxy  bool
	authLimiter *RateLimiter
	aiLimiter   *RateLimiter
	apiLimiter  *RateLimiter
}

func New(cfg config.Config, deps Dependencies) (*Server, error) {
	if deps.Flow == nil || deps.Readme == nil || deps.Collector == nil || deps.Repos == nil {
		return nil, errors.New("[Server New] flow, readme, collector and repos are required")
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		flow:      deps.Flow,
		readme:    deps.Readme,
		collector: deps.Collector,
		repos:     deps.Repos,
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,

		trustProxy: cfg.GetTrustProxy(),
	}

	if cfg.GetEnableRateLimiting() {
		s.authLimiter = NewRateLimiter("auth", cfg.GetAuthRateLimit(), "Too many authentication attempts. Please try again later.")
		s.aiLimiter = NewRateLimiter("ai", cfg.GetAIRateLimit(), "Too many AI requests. Please slow down.")
		s.apiLimiter = NewRateLimiter("api", cfg.GetAPIRateLimit(), "Too many requests. Please try again later.")
	}

	s.initRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.GlobalMiddleware()...)
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s] %s", color+paddedMethod+ResetColor, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
