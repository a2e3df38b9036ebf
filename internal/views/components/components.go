// Package components holds small HTML fragments shared by pages.
package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"parfumai/internal/catalog"
)

// Writer accumulates the first write error so fragments can be written
// without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s HTML-escaped.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Component renders c into the underlying writer.
func (h *Writer) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error encountered.
func (h *Writer) Err() error {
	return h.err
}

// StatCard renders a labelled figure.
func StatCard(label, value, hint string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		h.Raw(`<div class="stat-card"><dt>`)
		h.Text(label)
		h.Raw(`</dt><dd class="stat-value">`)
		h.Text(value)
		h.Raw(`</dd>`)
		if hint != "" {
			h.Raw(`<dd class="stat-hint">`)
			h.Text(hint)
			h.Raw(`</dd>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

// IngredientList renders ingredients with an optional per-item volume in ml.
// volumes may be nil or shorter than items.
func IngredientList(items []catalog.Ingredient, volumes []float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		if len(items) == 0 {
			h.Raw(`<p class="empty">No ingredients.</p>`)
			return h.Err()
		}
		h.Raw(`<ul class="ingredient-list">`)
		for i, item := range items {
			h.Raw(`<li data-type="`)
			h.Text(string(item.Type))
			h.Raw(`"><span class="name">`)
			h.Text(item.Name)
			h.Raw(`</span> <span class="type">`)
			h.Text(item.Type.Label())
			h.Raw(`</span>`)
			if i < len(volumes) && volumes[i] > 0 {
				h.Raw(` <span class="volume">`)
				h.Text(strconv.FormatFloat(volumes[i], 'f', -1, 64) + "ml")
				h.Raw(`</span>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul>`)
		return h.Err()
	})
}
