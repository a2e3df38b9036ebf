// Package catalog holds the ingredient vocabulary: the built-in default list,
// user additions and per-user hidden overrides.
package catalog

import (
	"fmt"
	"strings"
)

// Type distinguishes raw materials from concentrated essences.
type Type string

const (
	TypeRawMaterial Type = "raw_material"
	TypeEssence     Type = "essence"
)

// Ingredient is a single catalog entry. Identity is the ID.
type Ingredient struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Type        Type   `json:"type" validate:"required,oneof=raw_material essence"`
	Category    string `json:"category"`
	IsCustom    bool   `json:"isCustom,omitempty"`
	Description string `json:"description,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
}

// Label is the human readable name of the ingredient type.
func (t Type) Label() string {
	switch t {
	case TypeEssence:
		return "Essence"
	case TypeRawMaterial:
		return "Raw material"
	default:
		return string(t)
	}
}

// ParseType normalises user supplied type names, including the legacy
// identifiers used by older clients.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "raw_material", "raw-material", "raw", "hammade":
		return TypeRawMaterial, nil
	case "essence", "esans":
		return TypeEssence, nil
	default:
		return "", fmt.Errorf("catalog: unknown ingredient type %q", value)
	}
}

var defaults = []Ingredient{
	{ID: "r1", Name: "Rose Petals", Type: TypeRawMaterial, Category: "floral", Description: "Natural rose petals with a romantic, feminine scent", Purpose: "Core floral note, heart"},
	{ID: "r2", Name: "Lavender Flowers", Type: TypeRawMaterial, Category: "floral", Description: "Calming lavender flowers", Purpose: "Relaxing effect, top note"},
	{ID: "r3", Name: "Bergamot Peel", Type: TypeRawMaterial, Category: "citrus", Description: "Fresh, invigorating bergamot peel", Purpose: "Top note, cooling effect"},
	{ID: "r4", Name: "Vanilla Pod", Type: TypeRawMaterial, Category: "spice", Description: "Warm, sweet vanilla pod", Purpose: "Base note, warmth and depth"},
	{ID: "r5", Name: "Sandalwood", Type: TypeRawMaterial, Category: "woody", Description: "Creamy, soft sandalwood", Purpose: "Base note, woody character"},
	{ID: "r6", Name: "Jasmine Petals", Type: TypeRawMaterial, Category: "floral", Description: "Dense, heady jasmine petals", Purpose: "Heart note, feminine character"},
	{ID: "r7", Name: "Patchouli Leaves", Type: TypeRawMaterial, Category: "woody", Description: "Earthy patchouli leaves", Purpose: "Base note, natural character"},
	{ID: "e1", Name: "Rose Essence", Type: TypeEssence, Category: "floral", Description: "Distilled rose essence, intensely floral", Purpose: "Main heart note, romantic effect"},
	{ID: "e2", Name: "Lavender Essence", Type: TypeEssence, Category: "floral", Description: "Pure lavender essence, soothing", Purpose: "Top note, clean feel"},
	{ID: "e3", Name: "Bergamot Essence", Type: TypeEssence, Category: "citrus", Description: "The bergamot used in Earl Grey tea", Purpose: "Top note, fresh opening"},
	{ID: "e4", Name: "Vanilla Essence", Type: TypeEssence, Category: "spice", Description: "Concentrated vanilla essence, sweet and warm", Purpose: "Base note, lasting sweetness"},
	{ID: "e5", Name: "Sandalwood Essence", Type: TypeEssence, Category: "woody", Description: "Mystic sandalwood essence", Purpose: "Base note, meditative feel"},
	{ID: "e6", Name: "Jasmine Essence", Type: TypeEssence, Category: "floral", Description: "Night-blooming jasmine essence", Purpose: "Heart note, evening perfume"},
	{ID: "e7", Name: "Musk Essence", Type: TypeEssence, Category: "animalic", Description: "Synthetic musk essence, animalic note", Purpose: "Base note, sensual effect"},
}

// DominantScents lists the dominant scent families offered by the form.
var DominantScents = []string{"Floral", "Woody", "Citrus", "Oriental", "Fresh", "Spicy", "Fruity", "Green"}

// Defaults returns a copy of the built-in catalog in display order.
func Defaults() []Ingredient {
	out := make([]Ingredient, len(defaults))
	copy(out, defaults)
	return out
}

// CanonicalID maps legacy built-in identifiers onto the current ones. Older
// clients named the raw materials h1..h7; those become r1..r7. Other ids are
// returned trimmed and otherwise untouched.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) == 2 && (id[0] == 'h' || id[0] == 'H') && id[1] >= '1' && id[1] <= '7' {
		return "r" + id[1:]
	}
	return id
}

// Lookup returns the built-in entry for id, accepting legacy identifiers.
func Lookup(id string) (Ingredient, bool) {
	id = CanonicalID(id)
	for _, ingredient := range defaults {
		if ingredient.ID == id {
			return ingredient, true
		}
	}
	return Ingredient{}, false
}

// IsDefault reports whether id names a built-in catalog entry.
func IsDefault(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Visible merges the default catalog with custom entries, dropping hidden
// defaults. Defaults come first, then custom entries in their given order.
func Visible(base, custom []Ingredient, hidden []string) []Ingredient {
	suppressed := make(map[string]struct{}, len(hidden))
	for _, id := range hidden {
		suppressed[id] = struct{}{}
	}

	out := make([]Ingredient, 0, len(base)+len(custom))
	for _, ingredient := range base {
		if _, ok := suppressed[ingredient.ID]; ok {
			continue
		}
		out = append(out, ingredient)
	}
	for _, ingredient := range custom {
		ingredient.IsCustom = true
		out = append(out, ingredient)
	}
	return out
}

// Split partitions ingredients by type, preserving order within each bucket.
func Split(ingredients []Ingredient) (raw, essences []Ingredient) {
	for _, ingredient := range ingredients {
		switch ingredient.Type {
		case TypeEssence:
			essences = append(essences, ingredient)
		default:
			raw = append(raw, ingredient)
		}
	}
	return raw, essences
}

// Names returns the ingredient names in order.
func Names(ingredients []Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		names = append(names, ingredient.Name)
	}
	return names
}
