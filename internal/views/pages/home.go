package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"parfumai/internal/catalog"
	"parfumai/internal/views/components"
	"parfumai/internal/views/layout"
	"parfumai/internal/views/theme"
)

// HomeData is the state shown on the landing page.
type HomeData struct {
	Authenticated bool
	UserName      string
	Backend       string
	Catalog       []catalog.Ingredient
	SavedRecipes  int
}

// Home renders the landing page: auth state, catalog summary and the API entry points.
func Home(data HomeData) templ.Component {
	raw, essences := catalog.Split(data.Catalog)
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<main class="home"><header><h1>Parfum AI</h1><p class="session">`)
		if data.Authenticated {
			h.Raw(`Signed in as <strong>`)
			h.Text(data.UserName)
			h.Raw(`</strong>`)
		} else {
			h.Raw(`Browsing anonymously`)
		}
		h.Raw(` &middot; storage: `)
		h.Text(data.Backend)
		h.Raw(`</p></header>`)

		h.Raw(`<dl class="stats">`)
		h.Component(ctx, components.StatCard("Raw materials", strconv.Itoa(len(raw)), ""))
		h.Component(ctx, components.StatCard("Essences", strconv.Itoa(len(essences)), ""))
		h.Component(ctx, components.StatCard("Saved recipes", strconv.Itoa(data.SavedRecipes), ""))
		h.Raw(`</dl>`)

		h.Raw(`<section id="essences"><h2>Essences</h2>`)
		h.Component(ctx, components.IngredientList(essences, nil))
		h.Raw(`</section><section id="raw-materials"><h2>Raw materials</h2>`)
		h.Component(ctx, components.IngredientList(raw, nil))
		h.Raw(`</section>`)

		h.Raw(`<section id="dominant-scents"><h2>Dominant scents</h2><ul>`)
		for _, scent := range catalog.DominantScents {
			h.Raw(`<li>`)
			h.Text(scent)
			h.Raw(`</li>`)
		}
		h.Raw(`</ul></section></main>`)
		return h.Err()
	})
	return layout.Layout("Parfum AI", theme.Resolve(theme.DefaultKey), content)
}
