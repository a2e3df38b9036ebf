package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"parfumai/internal/catalog"
	"parfumai/internal/recipe"
	"parfumai/internal/store"
	"parfumai/internal/views/components"
	"parfumai/internal/views/layout"
	"parfumai/internal/views/theme"
)

// RecipeCard renders a saved recipe as a standalone HTML document suitable
// for download. The palette follows the recipe's season.
func RecipeCard(saved store.Recipe) templ.Component {
	prefs := recipe.Preferences{
		Gender:        recipe.Gender(saved.Gender),
		Season:        recipe.Season(saved.Season),
		DominantScent: saved.DominantScent,
	}.Normalize()
	breakdown := recipe.ComputeBreakdown(recipe.Selection{Ingredients: saved.Ingredients, Volume: saved.Volume})
	raw, essences := catalog.Split(saved.Ingredients)
	palette := theme.Resolve(string(prefs.Season))

	title := saved.Name
	if strings.TrimSpace(title) == "" {
		title = "Perfume Recipe"
	}

	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<article class="`)
		h.Text(palette.CardClass + " " + palette.BorderClass)
		h.Raw(`"><header><h1 class="`)
		h.Text(palette.AccentClass)
		h.Raw(`">`)
		h.Text(title)
		h.Raw(`</h1><p class="`)
		h.Text(palette.MutedClass)
		h.Raw(`">`)
		h.Text(strconv.Itoa(breakdown.Volume) + "ml")
		h.Raw(` &middot; `)
		h.Text(prefs.Gender.Label())
		h.Raw(` &middot; `)
		h.Text(prefs.Season.Label())
		if prefs.DominantScent != "" {
			h.Raw(` &middot; `)
			h.Text(prefs.DominantScent)
		}
		h.Raw(`</p>`)
		if !saved.CreatedAt.IsZero() {
			h.Raw(`<time datetime="`)
			h.Text(saved.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
			h.Raw(`">`)
			h.Text(saved.CreatedAt.UTC().Format("2 January 2006"))
			h.Raw(`</time>`)
		}
		h.Raw(`</header>`)

		h.Raw(`<section class="breakdown"><h2>Formula</h2>`)
		if len(essences) > 0 {
			h.Raw(`<h3>Essences `)
			h.Text(shareLabel(breakdown.Essences))
			h.Raw(`</h3>`)
			h.Component(ctx, components.IngredientList(essences, portionVolumes(breakdown.Essences)))
		}
		if len(raw) > 0 {
			h.Raw(`<h3>Raw materials `)
			h.Text(shareLabel(breakdown.Raw))
			h.Raw(`</h3>`)
			h.Component(ctx, components.IngredientList(raw, portionVolumes(breakdown.Raw)))
		}
		h.Raw(`<h3>Solvent `)
		h.Text(shareLabel(breakdown.Solvent))
		h.Raw(`</h3></section>`)

		h.Raw(`<section class="recipe"><h2>Recipe</h2><pre>`)
		h.Text(saved.Recipe)
		h.Raw(`</pre></section></article>`)
		return h.Err()
	})
	return layout.Layout(title, palette, content)
}

// RecipeCardFilename returns a download file name derived from the recipe name.
func RecipeCardFilename(saved store.Recipe) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(saved.Name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "recipe"
	}
	return name + ".html"
}

func shareLabel(s recipe.Share) string {
	return "(" + strconv.FormatFloat(s.Percent, 'f', -1, 64) + "%, " + strconv.FormatFloat(s.Volume, 'f', -1, 64) + "ml)"
}

func portionVolumes(s recipe.Share) []float64 {
	volumes := make([]float64, 0, len(s.Items))
	for _, item := range s.Items {
		volumes = append(volumes, item.Volume)
	}
	return volumes
}
