package theme

import "strings"

// Option represents a selectable palette exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Palette contains the styling primitives for a page or recipe card.
type Palette struct {
	Key         string
	Label       string
	BodyClass   string
	CardClass   string
	BorderClass string
	AccentClass string
	MutedClass  string
}

const (
	// DefaultKey is used when no season matches.
	DefaultKey = "spring"
)

var catalogue = map[string]Palette{
	"spring": {
		Key:         "spring",
		Label:       "Spring Garden",
		BodyClass:   "min-h-screen bg-rose-50 text-stone-900",
		CardClass:   "card card-spring",
		BorderClass: "border-rose-200",
		AccentClass: "text-rose-600",
		MutedClass:  "text-stone-500",
	},
	"summer": {
		Key:         "summer",
		Label:       "Summer Citrus",
		BodyClass:   "min-h-screen bg-amber-50 text-stone-900",
		CardClass:   "card card-summer",
		BorderClass: "border-amber-200",
		AccentClass: "text-amber-600",
		MutedClass:  "text-stone-500",
	},
	"autumn": {
		Key:         "autumn",
		Label:       "Autumn Amber",
		BodyClass:   "min-h-screen bg-orange-950 text-orange-50",
		CardClass:   "card card-autumn",
		BorderClass: "border-orange-800",
		AccentClass: "text-orange-300",
		MutedClass:  "text-orange-200",
	},
	"winter": {
		Key:         "winter",
		Label:       "Winter Woods",
		BodyClass:   "min-h-screen bg-slate-950 text-slate-100",
		CardClass:   "card card-winter",
		BorderClass: "border-slate-700",
		AccentClass: "text-cyan-300",
		MutedClass:  "text-slate-400",
	},
}

var options = []Option{
	{Value: "spring", Label: "Spring Garden"},
	{Value: "summer", Label: "Summer Citrus"},
	{Value: "autumn", Label: "Autumn Amber"},
	{Value: "winter", Label: "Winter Woods"},
}

// Resolve returns the palette registered for the season key.
func Resolve(key string) Palette {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available palettes in season order.
func Options() []Option {
	return options
}
