package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"parfumai/internal/views/components"
	"parfumai/internal/views/theme"
)

// Layout wraps content in the HTML document shell.
func Layout(title string, palette theme.Palette, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`)
		h.Text(title)
		h.Raw(`</title></head><body class="`)
		h.Text(palette.BodyClass)
		h.Raw(`" data-theme="`)
		h.Text(palette.Key)
		h.Raw(`">`)
		h.Component(ctx, content)
		h.Raw(`</body></html>`)
		return h.Err()
	})
}
