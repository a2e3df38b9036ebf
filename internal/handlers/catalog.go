package handlers

import (
	"net/http"

	"parfumai/internal/catalog"
	"parfumai/internal/store"
)

type catalogResponse struct {
	RawMaterials   []catalog.Ingredient `json:"rawMaterials"`
	Essences       []catalog.Ingredient `json:"essences"`
	DominantScents []string             `json:"dominantScents"`
}

// Catalog returns the visible catalog split by ingredient type.
func Catalog(w http.ResponseWriter, r *http.Request) {
	s, _ := storeFor(r)
	visible, err := store.Catalog(r.Context(), s)
	if err != nil {
		writeStoreError(w, r, "load catalog", err)
		return
	}
	raw, essences := catalog.Split(visible)
	if raw == nil {
		raw = []catalog.Ingredient{}
	}
	if essences == nil {
		essences = []catalog.Ingredient{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{RawMaterials: raw, Essences: essences, DominantScents: catalog.DominantScents})
}
