package handlers

import (
	"net/http"

	applog "parfumai/internal/log"
	"parfumai/internal/store"
	"parfumai/internal/views/pages"
)

// Home renders the landing page with the visible catalog and session state.
func Home(w http.ResponseWriter, r *http.Request) {
	s, backend := storeFor(r)
	principal, authenticated := currentPrincipal(r)

	visible, err := store.Catalog(r.Context(), s)
	if err != nil {
		applog.Error(r.Context(), "failed to load catalog for home page", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}
	saved, err := s.ListRecipes(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load recipes for home page", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pages.HomeData{
		Authenticated: authenticated,
		UserName:      principal.Name,
		Backend:       string(backend),
		Catalog:       visible,
		SavedRecipes:  len(saved),
	}
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render home page", "error", err)
	}
}
