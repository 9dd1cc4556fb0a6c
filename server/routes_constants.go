package server

// Route path constants
// All API routes are mounted under RouteAPIPrefix
const (
	RouteAPIPrefix = "/api"

	// Auth Routes
	RouteAuthGitHub         = RouteAPIPrefix + "/auth/github"
	RouteAuthGitHubCallback = RouteAPIPrefix + "/auth/github/callback"
	RouteAuthLogout         = RouteAPIPrefix + "/auth/logout"
	RouteAuthMe             = RouteAPIPrefix + "/auth/me"

	// Repository Routes
	RouteRepos    = RouteAPIPrefix + "/repos"
	RouteRepoTree = RouteAPIPrefix + "/repos/{owner}/{repo}/tree"

	// README Routes
	RouteReadmeGenerate = RouteAPIPrefix + "/readme/generate"
	RouteReadmeBeautify = RouteAPIPrefix + "/readme/beautify"

	// System Routes
	RouteHealth  = RouteAPIPrefix + "/health"
	RouteMetrics = "/metrics"

	// Client application paths, relative to CLIENT_URL
	ClientPathDashboard   = "/dashboard"
	ClientPathLoginFailed = "/login?error=oauth_failed"
)
