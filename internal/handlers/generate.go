package handlers

import (
	"errors"
	"net/http"

	"parfumai/internal/catalog"
	applog "parfumai/internal/log"
	"parfumai/internal/recipe"
	"parfumai/internal/store"
)

// GenerateRecipe produces a recipe for the submitted selection. Only invalid
// requests fail; provider problems are answered with the offline recipe.
func GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	if recipes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "recipe generation not available")
		return
	}

	var sel recipe.Selection
	if err := decodeJSON(w, r, &sel); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := recipes.Generate(r.Context(), sel)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "recipe generated", "source", string(result.Source), "reason", string(result.Reason), "ingredients", len(sel.Ingredients))
	writeJSON(w, http.StatusOK, result)
}

// MatchIngredients recommends raw materials for the selected essences. When
// the request names no available raw materials the visible catalog is used.
func MatchIngredients(w http.ResponseWriter, r *http.Request) {
	if recipes == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "ingredient matching not available")
		return
	}

	var req recipe.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.AvailableIngredients) == 0 && len(req.SelectedEssences) > 0 {
		s, _ := storeFor(r)
		visible, err := store.Catalog(r.Context(), s)
		if err != nil {
			writeStoreError(w, r, "load catalog", err)
			return
		}
		req.AvailableIngredients, _ = catalog.Split(visible)
	}

	result, err := recipes.Match(r.Context(), req)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "ingredients matched", "source", string(result.Source), "reason", string(result.Reason), "matched", len(result.Matched))
	writeJSON(w, http.StatusOK, result)
}

func writeRecipeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *recipe.ValidationError
	switch {
	case errors.Is(err, recipe.ErrNoIngredients):
		writeJSONError(w, http.StatusBadRequest, "Please select at least one ingredient.")
	case errors.Is(err, recipe.ErrNoEssences):
		writeJSONError(w, http.StatusBadRequest, "Please select at least one essence.")
	case errors.As(err, &validationErr):
		writeJSONError(w, http.StatusBadRequest, validationErr.Error())
	default:
		applog.Error(r.Context(), "unexpected recipe error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
	}
}
