package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parfumai/internal/catalog"
)

func ingredient(t *testing.T, id string) catalog.Ingredient {
	t.Helper()
	for _, candidate := range catalog.Defaults() {
		if candidate.ID == id {
			return candidate
		}
	}
	t.Fatalf("unknown default ingredient %q", id)
	return catalog.Ingredient{}
}

func rawMaterials() []catalog.Ingredient {
	raw, _ := catalog.Split(catalog.Defaults())
	return raw
}

func TestSelectionNormalizeAppliesDefaults(t *testing.T) {
	t.Parallel()

	sel := Selection{
		Ingredients: []catalog.Ingredient{{ID: "r1", Name: " Rose Petals ", Type: "hammade"}},
		Preferences: Preferences{Gender: "Kadın", Season: "fall"},
	}.Normalize()

	assert.Equal(t, GenderFemale, sel.Gender)
	assert.Equal(t, SeasonAutumn, sel.Season)
	assert.Equal(t, DefaultVolume, sel.Volume)
	assert.Equal(t, "Rose Petals", sel.Ingredients[0].Name)
	assert.Equal(t, catalog.TypeRawMaterial, sel.Ingredients[0].Type)
	require.NoError(t, sel.Validate())
}

func TestSelectionValidateOnlyRejectsEmptySelection(t *testing.T) {
	t.Parallel()

	err := Selection{Volume: 50}.Normalize().Validate()
	require.ErrorIs(t, err, ErrNoIngredients)

	err = MatchRequest{}.Normalize().Validate()
	require.ErrorIs(t, err, ErrNoEssences)
}

func TestSelectionNormalizeRepairsLooseInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sel   Selection
		check func(t *testing.T, sel Selection)
	}{
		{
			name: "unsupported volume",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "e1", Type: catalog.TypeEssence}}, Volume: 75},
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, DefaultVolume, sel.Volume)
			},
		},
		{
			name: "unknown enums",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "e1"}}, Preferences: Preferences{Gender: "other", Season: "monsoon"}},
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, GenderFemale, sel.Gender)
				assert.Equal(t, SeasonSpring, sel.Season)
			},
		},
		{
			name: "missing name and type filled from catalog",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "e1"}}},
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, "Rose Essence", sel.Ingredients[0].Name)
				assert.Equal(t, catalog.TypeEssence, sel.Ingredients[0].Type)
				assert.Equal(t, "floral", sel.Ingredients[0].Category)
			},
		},
		{
			name: "legacy id resolves",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "h5"}}},
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, "r5", sel.Ingredients[0].ID)
				assert.Equal(t, "Sandalwood", sel.Ingredients[0].Name)
				assert.Equal(t, catalog.TypeRawMaterial, sel.Ingredients[0].Type)
			},
		},
		{
			name: "unknown custom entry defaults to raw material",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "custom-9", Type: "resin"}}},
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, "custom-9", sel.Ingredients[0].Name)
				assert.Equal(t, catalog.TypeRawMaterial, sel.Ingredients[0].Type)
			},
		},
		{
			name: "long dominant scent",
			sel:  Selection{Ingredients: []catalog.Ingredient{{ID: "e1"}}, Preferences: Preferences{DominantScent: strings.Repeat("amber ", 40)}},
			check: func(t *testing.T, sel Selection) {
				assert.Greater(t, len(sel.DominantScent), 120)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := tt.sel.Normalize()
			require.NoError(t, sel.Validate())
			tt.check(t, sel)
		})
	}
}

func TestComputeBreakdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ingredients []string
		volume      int
		essence     float64
		raw         float64
		solvent     float64
		itemVolume  float64
	}{
		{"single essence", []string{"e1"}, 50, 12.5, 0, 37.5, 12.5},
		{"single raw material", []string{"r1"}, 50, 0, 5, 45, 5},
		{"mixed", []string{"e1", "e4", "r5"}, 100, 25, 10, 65, 12.5},
		{"three essences rounds per item", []string{"e1", "e2", "e3"}, 50, 12.5, 0, 37.5, 4.2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := Selection{Volume: tt.volume}
			for _, id := range tt.ingredients {
				sel.Ingredients = append(sel.Ingredients, ingredient(t, id))
			}
			b := ComputeBreakdown(sel)
			assert.Equal(t, 100.0, b.Total())
			assert.Equal(t, tt.essence, b.Essences.Volume)
			assert.Equal(t, tt.raw, b.Raw.Volume)
			assert.Equal(t, tt.solvent, b.Solvent.Volume)
			if len(b.Essences.Items) > 0 {
				assert.Equal(t, tt.itemVolume, b.Essences.Items[0].Volume)
			} else {
				assert.Equal(t, tt.itemVolume, b.Raw.Items[0].Volume)
			}
		})
	}
}

func TestBuildPromptSingleEssence(t *testing.T) {
	t.Parallel()

	sel := Selection{Ingredients: []catalog.Ingredient{ingredient(t, "e1")}}.Normalize()
	prompt := BuildPrompt(sel)

	assert.Contains(t, prompt, "50ml")
	assert.Contains(t, prompt, "Rose Essence: 12.5ml")
	assert.Contains(t, prompt, "Raw materials: none selected")
	assert.Contains(t, prompt, "Gender: Female")
	assert.Contains(t, prompt, "Dominant scent: not specified")
	assert.Contains(t, prompt, "Total: 100% = 50ml")
	assert.Equal(t, prompt, BuildPrompt(sel), "prompt must be deterministic")
}

func TestBuildMatchPromptListsAvailableMaterials(t *testing.T) {
	t.Parallel()

	req := MatchRequest{
		SelectedEssences:     []catalog.Ingredient{ingredient(t, "e1")},
		AvailableIngredients: rawMaterials(),
	}.Normalize()
	prompt := BuildMatchPrompt(req)

	assert.Contains(t, prompt, "Selected essences: Rose Essence")
	assert.Contains(t, prompt, "- Patchouli Leaves: Earthy patchouli leaves")
	assert.Contains(t, prompt, "RECOMMENDED_INGREDIENTS:")
}

func TestFallbackRecipe(t *testing.T) {
	t.Parallel()

	sel := Selection{
		Ingredients: []catalog.Ingredient{ingredient(t, "e3"), ingredient(t, "r5")},
		Preferences: Preferences{Gender: GenderUnisex, Season: SeasonWinter, DominantScent: "Woody"},
		Volume:      100,
	}.Normalize()
	text := FallbackRecipe(sel)

	assert.Contains(t, text, "Perfume Recipe (100ml)")
	assert.Contains(t, text, "Total: 100% = 100ml")
	assert.Contains(t, text, "Bergamot Essence: 25ml")
	assert.Contains(t, text, "Sandalwood: 10ml")
	assert.Contains(t, text, "Solvent (perfumer's alcohol): 65% (65ml)")
	assert.Contains(t, text, "1. Top notes (first 15 minutes): Bergamot Essence")
	assert.Contains(t, text, "3. Base notes (4 hours and longer): Sandalwood")
	assert.Contains(t, text, "unisex fragrance")
}

func TestExtractRecommendations(t *testing.T) {
	t.Parallel()

	text := "Here you go.\nRECOMMENDED_INGREDIENTS: [\"Rose Petals\", 'Sandalwood' ,  Vanilla Pod, ]\nEXPLANATION:  Rose and sandalwood are classic partners.\n"
	rec, ok := ExtractRecommendations(text)
	require.True(t, ok)
	assert.Equal(t, []string{"Rose Petals", "Sandalwood", "Vanilla Pod"}, rec.Names)
	assert.Equal(t, "Rose and sandalwood are classic partners.", rec.Explanation)

	rec, ok = ExtractRecommendations(`RECOMMENDED_INGREDIENTS: ["Rose's Petals", Sandal"wood, "'"]`)
	require.True(t, ok)
	assert.Equal(t, []string{"Roses Petals", "Sandalwood"}, rec.Names)

	rec, ok = ExtractRecommendations("I would pick roses.")
	assert.False(t, ok)
	assert.Empty(t, rec.Names)
	assert.Equal(t, DefaultExplanation, rec.Explanation)
}

func TestResolveMatches(t *testing.T) {
	t.Parallel()

	matched := ResolveMatches([]string{"rose", "Sandalwood Chips", "Unobtainium", "Rose Petals", ""}, rawMaterials())

	require.Len(t, matched, 2)
	assert.Equal(t, "r1", matched[0].ID)
	assert.Equal(t, "r5", matched[1].ID)
}

func TestSmartMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		essences []string
		want     []string
	}{
		{"rose pairs", []string{"e1"}, []string{"r1", "r5", "r6"}},
		{"musk pairs", []string{"e7"}, []string{"r4", "r5", "r7"}},
		{"capped at four", []string{"e1", "e2", "e4"}, []string{"r1", "r2", "r3", "r4"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var essences []catalog.Ingredient
			for _, id := range tt.essences {
				essences = append(essences, ingredient(t, id))
			}
			matched := SmartMatch(essences, rawMaterials())
			ids := make([]string, 0, len(matched))
			for _, m := range matched {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSmartMatchPadsUnknownEssences(t *testing.T) {
	t.Parallel()

	matched := SmartMatch([]catalog.Ingredient{{ID: "custom-1", Name: "Oud", Type: catalog.TypeEssence}}, rawMaterials())
	require.Len(t, matched, 3)
	assert.Equal(t, []string{"Rose Petals", "Lavender Flowers", "Bergamot Peel"}, catalog.Names(matched))

	assert.Empty(t, SmartMatch([]catalog.Ingredient{ingredient(t, "e1")}, nil))
}
