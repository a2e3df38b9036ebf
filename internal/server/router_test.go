package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"

	"parfumai/internal/handlers"
	"parfumai/internal/metrics"
	"parfumai/internal/store"
	"parfumai/internal/store/local"
)

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()

	sm := scs.New()
	handlers.Configure(handlers.Dependencies{
		Sessions: sm,
		Stores:   store.Selector{Local: local.New(sm)},
	})
	t.Cleanup(func() {
		handlers.Configure(handlers.Dependencies{})
	})

	registry := prometheus.NewRegistry()
	return newRouter(routerConfig{
		sessions:    sm,
		metrics:     metrics.New(registry),
		registry:    registry,
		corsOrigins: origins,
	})
}

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterServesCatalogFromSession(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /api/catalog to return 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestNewRouterRejectsUnknownMethods(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/generate-recipe", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET /api/generate-recipe, got %d", rr.Code)
	}
}

func TestNewRouterAppliesCORS(t *testing.T) {
	router := newTestRouter(t, "https://parfum.example")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/catalog", nil)
	req.Header.Set("Origin", "https://parfum.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://parfum.example" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials to be allowed, got %q", got)
	}
}
