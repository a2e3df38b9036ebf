package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"parfumai/internal/ai"
	"parfumai/internal/config"
	"parfumai/internal/db"
	"parfumai/internal/db/mock"
	applog "parfumai/internal/log"
	"parfumai/internal/recipe"
	"parfumai/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	recipeBinding, err := providerBinding(ctx, cfg.AI, cfg.AI.RecipeProvider)
	if err != nil {
		applog.Error(ctx, "failed to configure recipe provider", "error", err)
		return 1
	}
	matchBinding, err := providerBinding(ctx, cfg.AI, cfg.AI.MatchProvider)
	if err != nil {
		applog.Error(ctx, "failed to configure match provider", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Database:           database,
		Auth: server.AuthConfig{
			AdminUsername:     cfg.Auth.AdminUsername,
			AdminPasswordHash: cfg.Auth.AdminPasswordHash,
			SignupEnabled:     cfg.Auth.SignupEnabled,
		},
		Recipe: recipeBinding,
		Match:  matchBinding,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "hostedStore", database != nil)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err().Error())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

// openDatabase returns nil when no usable hosted store is configured.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch {
	case cfg.UseMock:
		applog.Info(ctx, "using in-memory mock database")
		return newMockDatabaseFunc(ctx)
	case cfg.HostedStoreEnabled():
		return configureDatabase(cfg)
	default:
		applog.Warn(ctx, "hosted store disabled, saved data lives in the session")
		return nil, nil
	}
}

// providerBinding builds the completion client for name. A missing or
// placeholder key yields a binding without a Completer.
func providerBinding(ctx context.Context, cfg config.AIConfig, name string) (server.ProviderBinding, error) {
	if name == "" {
		return server.ProviderBinding{}, nil
	}
	provider := ai.Provider(name)
	var creds config.ProviderConfig
	switch provider {
	case ai.ProviderOpenAI:
		creds = cfg.OpenAI
	case ai.ProviderGroq:
		creds = cfg.Groq
	default:
		return server.ProviderBinding{}, fmt.Errorf("unknown ai provider %q", name)
	}

	client, err := ai.NewClient(ai.Config{
		Provider: provider,
		APIKey:   creds.APIKey,
		Model:    creds.Model,
		BaseURL:  creds.BaseURL,
		Timeout:  cfg.Timeout,
	})
	if errors.Is(err, ai.ErrMissingCredential) {
		applog.Warn(ctx, "ai provider has no credential, using offline generator", "provider", name)
		return server.ProviderBinding{Name: name}, nil
	}
	if err != nil {
		return server.ProviderBinding{}, err
	}

	var completer recipe.Completer = client
	applog.Debug(ctx, "ai provider configured", "provider", name, "model", client.Model())
	return server.ProviderBinding{Name: name, Completer: completer}, nil
}
