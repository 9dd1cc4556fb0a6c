package server

import (
	"github.com/jrsteele09/readme-writer/internal/metrics"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("GET "+RouteAuthGitHub, ChainMiddleware(s.GitHubLoginHandler(), s.limit(s.authLimiter)))
	s.RegisterRouteFunc("GET "+RouteAuthGitHubCallback, ChainMiddleware(s.GitHubCallbackHandler(), s.limit(s.authLimiter)))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteAuthMe, s.CurrentUserHandler())

	// REPOSITORIES
	s.RegisterRouteFunc("GET "+RouteRepos, ChainMiddleware(s.ListReposHandler(), s.RequireSession(), s.limit(s.apiLimiter)))
	s.RegisterRouteFunc("GET "+RouteRepoTree, ChainMiddleware(s.RepoTreeHandler(), s.RequireSession(), s.limit(s.apiLimiter)))

	// README
	s.RegisterRouteFunc("POST "+RouteReadmeGenerate, ChainMiddleware(s.GenerateReadmeHandler(), s.RequireSession(), s.limit(s.aiLimiter)))
	s.RegisterRouteFunc("POST "+RouteReadmeBeautify, ChainMiddleware(s.BeautifyReadmeHandler(), s.limit(s.aiLimiter)))

	// SYSTEM
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.gatherer != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.gatherer))
	}

	s.RegisterRouteFunc("/", s.NotFoundHandler())
}
