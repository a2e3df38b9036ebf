package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"parfumai/internal/auth"
	"parfumai/internal/handlers"
	applog "parfumai/internal/log"
	"parfumai/internal/metrics"
	"parfumai/internal/recipe"
	"parfumai/internal/store"
	"parfumai/internal/store/hosted"
	"parfumai/internal/store/local"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr               string
	Session            SessionConfig
	CORSAllowedOrigins []string
	// Database backs the hosted store and database accounts. Nil serves
	// every request from the session store.
	Database *gorm.DB
	Auth     AuthConfig
	Recipe   ProviderBinding
	Match    ProviderBinding
	// Registry receives the metrics collectors. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AuthConfig configures the credential verifiers.
type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	SignupEnabled     bool
}

// ProviderBinding names a completion provider. A nil Completer routes every
// call to the offline generator.
type ProviderBinding struct {
	Name      string
	Completer recipe.Completer
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"hostedStore", cfg.Database != nil,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = "parfumai_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	instruments := metrics.New(registry)

	service := recipe.NewService(
		&recipe.Policy{Completer: cfg.Recipe.Completer, Provider: cfg.Recipe.Name, Observer: instruments},
		&recipe.Policy{Completer: cfg.Match.Completer, Provider: cfg.Match.Name, Observer: instruments},
	)

	verifiers := auth.Chain{auth.StaticVerifier{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}}
	if cfg.Database != nil {
		verifiers = append(verifiers, auth.DatabaseVerifier{DB: cfg.Database})
	}

	handlers.Configure(handlers.Dependencies{
		Sessions:      sessionManager,
		Stores:        store.Selector{Hosted: hosted.Factory(cfg.Database), Local: local.New(sessionManager)},
		Recipes:       service,
		Verifier:      verifiers,
		Users:         cfg.Database,
		SignupEnabled: cfg.Auth.SignupEnabled,
	})

	applog.Debug(context.Background(), "handler dependencies configured",
		"recipeProvider", cfg.Recipe.Name,
		"recipeLive", cfg.Recipe.Completer != nil,
		"matchProvider", cfg.Match.Name,
		"matchLive", cfg.Match.Completer != nil,
	)

	handler := newRouter(routerConfig{
		sessions:    sessionManager,
		metrics:     instruments,
		registry:    registry,
		corsOrigins: cfg.CORSAllowedOrigins,
	})

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
