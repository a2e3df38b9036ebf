package recipe

import (
	"fmt"
	"strings"

	"parfumai/internal/catalog"
)

// FallbackRecipe renders the offline recipe template for a normalised
// selection. It is used whenever the live provider cannot answer.
func FallbackRecipe(sel Selection) string {
	b := ComputeBreakdown(sel)
	raw, essences := catalog.Split(sel.Ingredients)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Perfume Recipe (%dml)\n", b.Volume)
	fmt.Fprintf(&sb, "Profile: %s, %s, dominant scent %s\n\n", sel.Gender.Label(), sel.Season.Label(), dominantLabel(sel.DominantScent))

	sb.WriteString("FORMULA BREAKDOWN\n")
	writeFallbackBucket(&sb, "Essences", essences, b.Essences)
	writeFallbackBucket(&sb, "Raw materials", raw, b.Raw)
	fmt.Fprintf(&sb, "- Solvent (perfumer's alcohol): %s (%s)\n", formatPercent(b.Solvent.Percent), formatML(b.Solvent.Volume))
	fmt.Fprintf(&sb, "Total: %s = %dml\n\n", formatPercent(b.Total()), b.Volume)

	top, heart, base := pyramid(sel.Ingredients)
	sb.WriteString("NOTE PYRAMID\n")
	fmt.Fprintf(&sb, "1. Top notes (first 15 minutes): %s\n", noteList(top))
	fmt.Fprintf(&sb, "2. Heart notes (15 minutes to 4 hours): %s\n", noteList(heart))
	fmt.Fprintf(&sb, "3. Base notes (4 hours and longer): %s\n\n", noteList(base))

	sb.WriteString("BLENDING INSTRUCTIONS\n")
	sb.WriteString("1. Work in a clean, dry glass bottle.\n")
	if len(raw) > 0 {
		sb.WriteString("2. Macerate the raw materials in half of the alcohol for 48 hours, then strain.\n")
	} else {
		sb.WriteString("2. Pour half of the alcohol into the bottle.\n")
	}
	if len(essences) > 0 {
		sb.WriteString("3. Add the essences drop by drop, base notes first and top notes last.\n")
	} else {
		sb.WriteString("3. Add the strained maceration back to the bottle.\n")
	}
	sb.WriteString("4. Top up with the remaining alcohol and shake gently for a minute.\n\n")

	sb.WriteString("MATURATION\n")
	sb.WriteString("Rest the bottle for 4 to 6 weeks in a cool, dark place and shake it once a week.\n\n")

	sb.WriteString("WEARING SUGGESTIONS\n")
	sb.WriteString(wearingSuggestion(sel.Preferences))
	sb.WriteString("\n\nThis recipe was prepared offline from the selected ingredients.")
	return sb.String()
}

func writeFallbackBucket(sb *strings.Builder, label string, items []catalog.Ingredient, s Share) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "- %s: %s (%s)\n", label, formatPercent(s.Percent), formatML(s.Volume))
	for i, item := range items {
		fmt.Fprintf(sb, "  - %s: %s\n", item.Name, formatML(s.Items[i].Volume))
	}
}

func pyramid(items []catalog.Ingredient) (top, heart, base []string) {
	for _, item := range items {
		switch strings.ToLower(item.Category) {
		case "citrus", "fresh", "green":
			top = append(top, item.Name)
		case "woody", "spice", "animalic", "resin":
			base = append(base, item.Name)
		default:
			heart = append(heart, item.Name)
		}
	}
	return top, heart, base
}

func noteList(names []string) string {
	if len(names) == 0 {
		return "carried by the other notes"
	}
	return strings.Join(names, ", ")
}

func wearingSuggestion(p Preferences) string {
	var when string
	switch p.Season {
	case SeasonSummer:
		when = "Light enough for warm days; reapply in the afternoon."
	case SeasonAutumn:
		when = "Suits cool evenings and layered clothing."
	case SeasonWinter:
		when = "Best on cold days and at night, where the base notes last longest."
	default:
		when = "Fresh enough for daytime wear in mild weather."
	}
	return fmt.Sprintf("%s Composed as a %s fragrance.", when, strings.ToLower(p.Gender.Label()))
}
