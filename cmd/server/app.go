package main

import (
	"fmt"

	"github.com/jrsteele09/readme-writer/auth"
	"github.com/jrsteele09/readme-writer/github"
	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/jrsteele09/readme-writer/internal/metrics"
	"github.com/jrsteele09/readme-writer/llm"
	"github.com/jrsteele09/readme-writer/readme"
	"github.com/jrsteele09/readme-writer/server"
	"github.com/jrsteele09/readme-writer/sessions"
	"github.com/jrsteele09/readme-writer/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

type app struct {
	server   *server.Server
	sessions sessions.Store
}

func buildApp(c config.Config) (*app, error) {
	store := sessions.NewInMemoryStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry, store.Len)

	chain, err := buildChain(c, collector)
	if err != nil {
		return nil, err
	}

	signer, err := token.NewSigner(token.SignerSettings{
		Algorithm:      c.GetJWTAlgorithm(),
		Secret:         c.GetJWTSecret(),
		PrivateKeyFile: c.GetJWTPrivateKeyFile(),
		KeyID:          c.GetAppName(),
	})
	if err != nil {
		return nil, fmt.Errorf("[main buildApp] %w", err)
	}
	issuer := token.NewIssuer(signer, token.WithExpiry(c.GetSessionExpiry()), token.WithIssuerName(c.GetAppName()))

	authClient := github.NewAuthClient(github.AuthConfig{
		ClientID:     c.GetGitHubClientID(),
		ClientSecret: c.GetGitHubClientSecret(),
		RedirectURL:  c.GetGitHubCallbackURL(),
		Scopes:       c.GetGitHubScopes(),
		APIURL:       c.GetGitHubAPIURL(),
	})
	repos := github.NewRepoClient(c.GetGitHubAPIURL(), c.GetGitHubHTTPTimeout(), nil)

	flow := auth.NewFlow(authClient, issuer, store,
		auth.WithCookiePolicy(auth.CookiePolicy{Secure: c.GetCookieSecure(), SameSite: c.GetCookieSameSite()}),
		auth.WithStateTTL(c.GetStateCookieTTL()),
		auth.WithSessionTTL(c.GetSessionCookieTTL()),
	)

	srv, err := server.New(c, server.Dependencies{
		Flow:      flow,
		Readme:    readme.NewService(chain, c.GetMaxTokens()),
		Collector: readme.NewCollector(repos),
		Repos:     repos,
		Metrics:   collector,
		Gatherer:  registry,
	})
	if err != nil {
		return nil, err
	}

	return &app{server: srv, sessions: store}, nil
}

func buildChain(c config.Config, recorder llm.MetricsRecorder) (*llm.FallbackClient, error) {
	settings := chainSettings(c)
	settings.Metrics = recorder

	if path := c.GetModelsFile(); path != "" {
		file, err := llm.LoadChainFile(path)
		if err != nil {
			return nil, err
		}
		settings.File = file
	} else if c.GetSecondaryAPIKey() == "" {
		log.Warn().Str("provider", c.GetSecondaryProvider()).Msg("No API key for the secondary provider, fallback disabled")
	}
	return llm.BuildChain(settings)
}

func chainSettings(c config.Config) llm.ChainSettings {
	return llm.ChainSettings{
		OpenRouterAPIKey:  c.GetOpenRouterAPIKey(),
		OpenRouterBaseURL: c.GetOpenRouterBaseURL(),
		Referer:           c.GetClientURL(),
		Title:             c.GetAppName(),
		OpenAIAPIKey:      c.GetOpenAIAPIKey(),
		OpenAIBaseURL:     c.GetOpenAIBaseURL(),
		AnthropicAPIKey:   c.GetAnthropicAPIKey(),
		PrimaryModels:     c.GetPrimaryModels(),
		SecondaryProvider: c.GetSecondaryProvider(),
		SecondaryModel:    c.GetSecondaryModel(),
		Timeout:           c.GetCandidateTimeout(),
	}
}
