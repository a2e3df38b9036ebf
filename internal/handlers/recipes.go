package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"parfumai/internal/catalog"
	applog "parfumai/internal/log"
	"parfumai/internal/recipe"
	"parfumai/internal/store"
	"parfumai/internal/views/pages"
)

// ListRecipes returns the saved recipes of the current store, newest first.
func ListRecipes(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	saved, err := s.ListRecipes(r.Context())
	if err != nil {
		writeStoreError(w, r, "list recipes", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// CreateRecipe saves a generated recipe. Ids and timestamps are assigned by the store.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req store.Recipe
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs := recipe.Preferences{
		Gender:        recipe.Gender(req.Gender),
		Season:        recipe.Season(req.Season),
		DominantScent: req.DominantScent,
	}.Normalize()
	req.ID = ""
	req.CreatedAt = time.Time{}
	req.Gender = string(prefs.Gender)
	req.Season = string(prefs.Season)
	req.DominantScent = prefs.DominantScent
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = fmt.Sprintf("Perfume Recipe %s", time.Now().UTC().Format("2006-01-02 15:04"))
	}
	if req.Volume == 0 {
		req.Volume = recipe.DefaultVolume
	}
	for i := range req.Ingredients {
		if kind, err := catalog.ParseType(string(req.Ingredients[i].Type)); err == nil {
			req.Ingredients[i].Type = kind
		}
	}
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	s, backend := storeFor(r)
	saved, err := s.CreateRecipe(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create recipe", err)
		return
	}
	applog.Debug(r.Context(), "recipe saved", "id", saved.ID, "backend", string(backend))
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteRecipe removes a saved recipe.
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	if err := s.DeleteRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, r, "delete recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecipeCard downloads a saved recipe as a standalone HTML card.
func RecipeCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, _ := storeFor(r)
	saved, err := s.ListRecipes(r.Context())
	if err != nil {
		writeStoreError(w, r, "load recipe card", err)
		return
	}

	for _, candidate := range saved {
		if candidate.ID != id {
			continue
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pages.RecipeCardFilename(candidate)))
		if err := pages.RecipeCard(candidate).Render(r.Context(), w); err != nil {
			applog.Error(r.Context(), "failed to render recipe card", "id", id, "error", err)
		}
		return
	}
	writeJSONError(w, http.StatusNotFound, "not found")
}
