// Package recipe turns an ingredient selection into a fragrance recipe: prompt
// construction, the provider fallback policy, the offline template and the
// extraction of structured answers from model text.
package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"parfumai/internal/catalog"
)

// Gender is the wearer profile of a recipe.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderUnisex Gender = "unisex"
)

// Season is the season a recipe is tuned for.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// DefaultVolume is the bottle size used when none is given.
const DefaultVolume = 50

var (
	// ErrNoIngredients rejects generation requests without ingredients.
	ErrNoIngredients = errors.New("recipe: at least one ingredient must be selected")
	// ErrNoEssences rejects matching requests without essences.
	ErrNoEssences = errors.New("recipe: at least one essence must be selected")
)

// ValidationError wraps field level validation failures.
type ValidationError struct {
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recipe: invalid request: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Preferences are the enum-like choices that accompany a selection.
type Preferences struct {
	Gender        Gender `json:"gender" validate:"oneof=female male unisex"`
	Season        Season `json:"season" validate:"oneof=spring summer autumn winter"`
	DominantScent string `json:"dominantScent"`
}

// Selection is the form state submitted for generation.
type Selection struct {
	Ingredients []catalog.Ingredient `json:"ingredients"`
	Preferences
	Volume int `json:"volume" validate:"oneof=50 100"`
}

// MatchRequest asks for raw materials that pair with the chosen essences.
type MatchRequest struct {
	SelectedEssences     []catalog.Ingredient `json:"selectedEssences"`
	AvailableIngredients []catalog.Ingredient `json:"availableIngredients"`
	Preferences
}

// Normalize fills defaults and maps legacy enum spellings onto the canonical values.
func (s Selection) Normalize() Selection {
	s.Preferences = s.Preferences.Normalize()
	if s.Volume != 50 && s.Volume != 100 {
		s.Volume = DefaultVolume
	}
	s.Ingredients = normalizeIngredients(s.Ingredients)
	return s
}

// Validate checks the invariants of a normalised selection.
func (s Selection) Validate() error {
	if len(s.Ingredients) == 0 {
		return ErrNoIngredients
	}
	return structError(validate.Struct(s))
}

// Normalize fills defaults and maps legacy enum spellings.
func (m MatchRequest) Normalize() MatchRequest {
	m.Preferences = m.Preferences.Normalize()
	m.SelectedEssences = normalizeIngredients(m.SelectedEssences)
	m.AvailableIngredients = normalizeIngredients(m.AvailableIngredients)
	return m
}

// Validate checks the invariants of a normalised match request.
func (m MatchRequest) Validate() error {
	if len(m.SelectedEssences) == 0 {
		return ErrNoEssences
	}
	return structError(validate.Struct(m))
}

// Normalize fills the default profile and maps legacy spellings. Unknown
// values fall back to the default profile.
func (p Preferences) Normalize() Preferences {
	switch strings.ToLower(strings.TrimSpace(string(p.Gender))) {
	case "", "female", "kadın", "kadin", "woman":
		p.Gender = GenderFemale
	case "male", "erkek", "man":
		p.Gender = GenderMale
	case "unisex":
		p.Gender = GenderUnisex
	default:
		p.Gender = GenderFemale
	}
	switch strings.ToLower(strings.TrimSpace(string(p.Season))) {
	case "", "spring", "ilkbahar":
		p.Season = SeasonSpring
	case "summer", "yaz":
		p.Season = SeasonSummer
	case "autumn", "fall", "sonbahar":
		p.Season = SeasonAutumn
	case "winter", "kış", "kis":
		p.Season = SeasonWinter
	default:
		p.Season = SeasonSpring
	}
	p.DominantScent = strings.TrimSpace(p.DominantScent)
	return p
}

func normalizeIngredients(in []catalog.Ingredient) []catalog.Ingredient {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalog.Ingredient, 0, len(in))
	for _, ingredient := range in {
		ingredient.ID = catalog.CanonicalID(ingredient.ID)
		ingredient.Name = strings.TrimSpace(ingredient.Name)
		parsed, err := catalog.ParseType(string(ingredient.Type))
		if known, ok := catalog.Lookup(ingredient.ID); ok {
			if ingredient.Name == "" {
				ingredient.Name = known.Name
			}
			if ingredient.Category == "" {
				ingredient.Category = known.Category
			}
			if err != nil {
				parsed, err = known.Type, nil
			}
		}
		if err != nil {
			parsed = catalog.TypeRawMaterial
		}
		ingredient.Type = parsed
		if ingredient.Name == "" {
			ingredient.Name = ingredient.ID
		}
		out = append(out, ingredient)
	}
	return out
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []string{err.Error()}, err: err}
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return &ValidationError{Fields: fields, err: err}
}
