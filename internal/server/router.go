package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parfumai/internal/handlers"
	applog "parfumai/internal/log"
	"parfumai/internal/metrics"
)

type routerConfig struct {
	sessions    *scs.SessionManager
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	corsOrigins []string
}

func newRouter(cfg routerConfig) http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if len(cfg.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		applog.Debug(context.Background(), "cors enabled", "origins", cfg.corsOrigins)
	}
	if cfg.metrics != nil {
		r.Use(cfg.metrics.Middleware)
	}

	r.Get("/healthz", handlers.Health)
	if cfg.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.sessions.LoadAndSave)

		r.Get("/", handlers.Home)
		r.Route("/api", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", handlers.Login)
				r.Post("/signup", handlers.Signup)
				r.Post("/logout", handlers.Logout)
				r.Get("/session", handlers.Session)
			})

			r.Get("/catalog", handlers.Catalog)
			r.Post("/generate-recipe", handlers.GenerateRecipe)
			r.Post("/match-ingredients", handlers.MatchIngredients)

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", handlers.ListRecipes)
				r.Post("/", handlers.CreateRecipe)
				r.Delete("/{id}", handlers.DeleteRecipe)
				r.Get("/{id}/card", handlers.RecipeCard)
			})

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/custom", handlers.ListCustomIngredients)
				r.Post("/custom", handlers.CreateCustomIngredient)
				r.Delete("/custom/{id}", handlers.DeleteCustomIngredient)
				r.Get("/hidden", handlers.ListHiddenIngredients)
				r.Post("/hidden", handlers.HideIngredient)
				r.Delete("/hidden/{id}", handlers.UnhideIngredient)
			})
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		applog.Debug(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
