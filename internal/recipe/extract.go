package recipe

import (
	"regexp"
	"strings"
)

// DefaultExplanation is returned when the model omits an explanation or the
// offline matcher is used.
const DefaultExplanation = "Ingredient recommendations prepared."

var (
	recommendedPattern = regexp.MustCompile(`(?i)RECOMMENDED_INGREDIENTS:\s*\[(.*?)\]`)
	explanationPattern = regexp.MustCompile(`(?is)EXPLANATION:\s*(.*)$`)

	quoteStripper = strings.NewReplacer(`"`, "", "'", "")
)

// Recommendation is the structured part of a pairing answer.
type Recommendation struct {
	Names       []string `json:"recommendedIngredients"`
	Explanation string   `json:"explanation"`
}

// ExtractRecommendations parses the RECOMMENDED_INGREDIENTS and EXPLANATION
// markers out of model text. ok is false when no names could be found.
func ExtractRecommendations(text string) (Recommendation, bool) {
	rec := Recommendation{Explanation: DefaultExplanation}
	if m := explanationPattern.FindStringSubmatch(text); m != nil {
		if explanation := strings.TrimSpace(m[1]); explanation != "" {
			rec.Explanation = explanation
		}
	}

	m := recommendedPattern.FindStringSubmatch(text)
	if m == nil {
		return rec, false
	}
	for _, part := range strings.Split(m[1], ",") {
		if name := strings.TrimSpace(quoteStripper.Replace(part)); name != "" {
			rec.Names = append(rec.Names, name)
		}
	}
	return rec, len(rec.Names) > 0
}
