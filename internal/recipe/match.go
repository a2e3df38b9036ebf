package recipe

import (
	"strings"

	"parfumai/internal/catalog"
)

const (
	minMatches = 3
	maxMatches = 4
)

// ResolveMatches maps recommended names onto available ingredients using
// case-insensitive containment in either direction. Unknown names are
// dropped and each ingredient appears at most once.
func ResolveMatches(names []string, available []catalog.Ingredient) []catalog.Ingredient {
	seen := make(map[string]struct{}, len(names))
	var out []catalog.Ingredient
	for _, name := range names {
		want := strings.ToLower(strings.TrimSpace(name))
		if want == "" {
			continue
		}
		for _, candidate := range available {
			have := strings.ToLower(candidate.Name)
			if have == "" || !(strings.Contains(have, want) || strings.Contains(want, have)) {
				continue
			}
			if _, dup := seen[candidate.ID]; dup {
				continue
			}
			seen[candidate.ID] = struct{}{}
			out = append(out, candidate)
			break
		}
	}
	return out
}

var affinities = []struct {
	keyword string
	pairs   []string
}{
	{"rose", []string{"rose", "jasmine", "sandalwood"}},
	{"lavender", []string{"lavender", "bergamot", "patchouli"}},
	{"bergamot", []string{"bergamot", "lavender", "rose"}},
	{"citrus", []string{"bergamot"}},
	{"vanilla", []string{"vanilla", "sandalwood", "patchouli"}},
	{"sandal", []string{"sandalwood", "vanilla", "patchouli"}},
	{"wood", []string{"sandalwood", "patchouli"}},
	{"jasmine", []string{"jasmine", "rose", "vanilla"}},
	{"musk", []string{"sandalwood", "vanilla", "patchouli"}},
}

// SmartMatch is the offline pairing: each essence name pulls in the raw
// materials its keyword pairs with, padded from the available list to at
// least three and capped at four. Results follow the available list order.
func SmartMatch(essences, available []catalog.Ingredient) []catalog.Ingredient {
	var wanted []string
	for _, essence := range essences {
		name := strings.ToLower(essence.Name)
		for _, affinity := range affinities {
			if strings.Contains(name, affinity.keyword) {
				wanted = append(wanted, affinity.pairs...)
			}
		}
	}

	picked := make(map[string]struct{})
	var out []catalog.Ingredient
	for _, candidate := range available {
		name := strings.ToLower(candidate.Name)
		for _, keyword := range wanted {
			if strings.Contains(name, keyword) {
				picked[candidate.ID] = struct{}{}
				out = append(out, candidate)
				break
			}
		}
	}

	for _, candidate := range available {
		if len(out) >= minMatches {
			break
		}
		if _, ok := picked[candidate.ID]; ok {
			continue
		}
		picked[candidate.ID] = struct{}{}
		out = append(out, candidate)
	}

	if len(out) > maxMatches {
		out = out[:maxMatches]
	}
	return out
}
