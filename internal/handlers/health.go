package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "parfumai/internal/log"
	"parfumai/internal/recipe"
)

type healthResponse struct {
	Status      string                           `json:"status"`
	Time        time.Time                        `json:"time"`
	HostedStore bool                             `json:"hostedStore"`
	Providers   map[string]recipe.ProviderStatus `json:"providers"`
}

// Health reports readiness along with the storage backend and whether each AI
// operation has a live provider or runs on its offline fallback.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Time:        time.Now().UTC(),
		HostedStore: stores.HostedEnabled(),
		Providers:   map[string]recipe.ProviderStatus{},
	}
	if recipes != nil {
		resp.Providers = recipes.Providers()
	}
	applog.Debug(r.Context(), "health check requested", "hostedStore", resp.HostedStore)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
