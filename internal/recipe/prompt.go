package recipe

import (
	"fmt"
	"strings"

	"parfumai/internal/catalog"
)

const (
	recipeSystemPrompt = "You are a professional perfumer. Write precise, practical perfume recipes with exact millilitre amounts."
	matchSystemPrompt  = "You are a master perfumer with over twenty years of experience pairing essences with natural raw materials."
)

// Label returns the display form of the gender.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderUnisex:
		return "Unisex"
	default:
		return "Female"
	}
}

// Label returns the display form of the season.
func (s Season) Label() string {
	switch s {
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Spring"
	}
}

func dominantLabel(scent string) string {
	if scent == "" {
		return "not specified"
	}
	return scent
}

// BuildPrompt renders the recipe prompt for a normalised selection. The
// output is deterministic for a given selection.
func BuildPrompt(sel Selection) string {
	b := ComputeBreakdown(sel)
	raw, essences := catalog.Split(sel.Ingredients)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a detailed perfume recipe for a %dml bottle using the information below.\n\n", b.Volume)

	sb.WriteString("Selected ingredients:\n")
	writeBucket(&sb, "Essences", essences, b.Essences)
	writeBucket(&sb, "Raw materials", raw, b.Raw)
	fmt.Fprintf(&sb, "- Solvent (perfumer's alcohol): %s (%s)\n", formatPercent(b.Solvent.Percent), formatML(b.Solvent.Volume))
	fmt.Fprintf(&sb, "Total: %s = %dml\n\n", formatPercent(b.Total()), b.Volume)

	sb.WriteString("Preferences:\n")
	fmt.Fprintf(&sb, "- Gender: %s\n", sel.Gender.Label())
	fmt.Fprintf(&sb, "- Season: %s\n", sel.Season.Label())
	fmt.Fprintf(&sb, "- Dominant scent: %s\n\n", dominantLabel(sel.DominantScent))

	sb.WriteString("Structure the recipe with these sections:\n")
	sb.WriteString("1. Top notes (first 15 minutes): ingredients and amounts in ml\n")
	sb.WriteString("2. Heart notes (15 minutes to 4 hours): ingredients and amounts in ml\n")
	sb.WriteString("3. Base notes (4 hours and longer): ingredients and amounts in ml\n")
	sb.WriteString("4. Blending instructions: step by step\n")
	sb.WriteString("5. Maturation: how long and where to rest the blend\n")
	sb.WriteString("6. Wearing suggestions: occasions and time of day\n\n")
	fmt.Fprintf(&sb, "Keep the essence, raw material and solvent percentages above and make the amounts add up to exactly %dml.", b.Volume)
	return sb.String()
}

func writeBucket(sb *strings.Builder, label string, items []catalog.Ingredient, s Share) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "- %s: none selected\n", label)
		return
	}
	fmt.Fprintf(sb, "- %s: %s (%s)\n", label, formatPercent(s.Percent), formatML(s.Volume))
	for i, item := range items {
		line := fmt.Sprintf("  - %s: %s", item.Name, formatML(s.Items[i].Volume))
		if item.Category != "" {
			line += fmt.Sprintf(" [%s]", item.Category)
		}
		sb.WriteString(line + "\n")
	}
}

// BuildMatchPrompt renders the pairing prompt. The model is asked to answer
// in the RECOMMENDED_INGREDIENTS / EXPLANATION format that ExtractRecommendations parses.
func BuildMatchPrompt(req MatchRequest) string {
	var sb strings.Builder
	sb.WriteString("Recommend the raw materials that pair best with the selected essences.\n\n")

	fmt.Fprintf(&sb, "Selected essences: %s\n", strings.Join(catalog.Names(req.SelectedEssences), ", "))
	sb.WriteString("Available raw materials:\n")
	for _, item := range req.AvailableIngredients {
		if item.Description != "" {
			fmt.Fprintf(&sb, "- %s: %s\n", item.Name, item.Description)
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", item.Name)
	}

	sb.WriteString("\nPreferences:\n")
	fmt.Fprintf(&sb, "- Gender: %s\n", req.Gender.Label())
	fmt.Fprintf(&sb, "- Season: %s\n", req.Season.Label())
	fmt.Fprintf(&sb, "- Dominant scent: %s\n\n", dominantLabel(req.DominantScent))

	sb.WriteString("Pick 3 or 4 raw materials from the available list only, using their exact names.\n")
	sb.WriteString("Answer in exactly this format:\n")
	sb.WriteString("RECOMMENDED_INGREDIENTS: [name 1, name 2, name 3]\n")
	sb.WriteString("EXPLANATION: why these raw materials suit the essences and preferences")
	return sb.String()
}
