package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"parfumai/internal/catalog"
)

type customIngredientRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Type        string `json:"type" validate:"required"`
	Category    string `json:"category" validate:"max=60"`
	Description string `json:"description" validate:"max=500"`
	Purpose     string `json:"purpose" validate:"max=500"`
}

type hideRequest struct {
	IngredientID string `json:"ingredientId" validate:"required"`
}

// ListCustomIngredients returns the current store's custom ingredients.
func ListCustomIngredients(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	items, err := s.ListCustomIngredients(r.Context())
	if err != nil {
		writeStoreError(w, r, "list custom ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateCustomIngredient adds an ingredient to the current store.
func CreateCustomIngredient(w http.ResponseWriter, r *http.Request) {
	var req customIngredientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	kind, err := catalog.ParseType(req.Type)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "type must be raw_material or essence")
		return
	}

	s, _ := storeFor(r)
	created, err := s.CreateCustomIngredient(r.Context(), catalog.Ingredient{
		Name:        req.Name,
		Type:        kind,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Purpose:     strings.TrimSpace(req.Purpose),
	})
	if err != nil {
		writeStoreError(w, r, "create custom ingredient", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteCustomIngredient removes a custom ingredient.
func DeleteCustomIngredient(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	if err := s.DeleteCustomIngredient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, r, "delete custom ingredient", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHiddenIngredients returns the hidden default ingredient ids.
func ListHiddenIngredients(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	ids, err := s.ListHiddenIngredients(r.Context())
	if err != nil {
		writeStoreError(w, r, "list hidden ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// HideIngredient hides a default ingredient. Hiding twice is a no-op.
func HideIngredient(w http.ResponseWriter, r *http.Request) {
	var req hideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.IngredientID = catalog.CanonicalID(req.IngredientID)
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if !catalog.IsDefault(req.IngredientID) {
		writeJSONError(w, http.StatusBadRequest, "only default ingredients can be hidden")
		return
	}

	s, _ := storeFor(r)
	if err := s.HideIngredient(r.Context(), req.IngredientID); err != nil {
		writeStoreError(w, r, "hide ingredient", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnhideIngredient restores a hidden default ingredient.
func UnhideIngredient(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	if err := s.UnhideIngredient(r.Context(), catalog.CanonicalID(chi.URLParam(r, "id"))); err != nil {
		writeStoreError(w, r, "unhide ingredient", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
