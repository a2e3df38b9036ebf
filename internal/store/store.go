// Package store defines the persistence capability shared by the hosted
// (database) and local (browser session) backends, and the migration that
// moves anonymous data into an account on login.
package store

import (
	"context"
	"errors"
	"time"

	"parfumai/internal/catalog"
)

// ErrNotFound is returned when a record does not exist for the current owner.
var ErrNotFound = errors.New("store: record not found")

// Backend names the storage that served a request.
type Backend string

const (
	BackendHosted Backend = "hosted"
	BackendLocal  Backend = "local"
)

// Recipe is a saved generation result. Recipes are immutable once saved.
type Recipe struct {
	ID            string               `json:"id"`
	Name          string               `json:"name" validate:"required,max=200"`
	Ingredients   []catalog.Ingredient `json:"ingredients" validate:"required,min=1,dive"`
	Gender        string               `json:"gender" validate:"required,oneof=female male unisex"`
	Season        string               `json:"season" validate:"required,oneof=spring summer autumn winter"`
	DominantScent string               `json:"dominantScent" validate:"max=120"`
	Recipe        string               `json:"recipe" validate:"required"`
	Volume        int                  `json:"volume" validate:"oneof=50 100"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Store is the capability both backends implement. Implementations scope
// every call to a single owner.
type Store interface {
	ListRecipes(ctx context.Context) ([]Recipe, error)
	CreateRecipe(ctx context.Context, recipe Recipe) (Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error

	ListCustomIngredients(ctx context.Context) ([]catalog.Ingredient, error)
	CreateCustomIngredient(ctx context.Context, ingredient catalog.Ingredient) (catalog.Ingredient, error)
	DeleteCustomIngredient(ctx context.Context, id string) error

	ListHiddenIngredients(ctx context.Context) ([]string, error)
	HideIngredient(ctx context.Context, id string) error
	UnhideIngredient(ctx context.Context, id string) error
}

// Selector picks the backend for a request. Hosted is nil when no hosted
// store is configured, in which case every request is served locally.
type Selector struct {
	Hosted func(owner string) Store
	Local  Store
}

// For returns the hosted store scoped to owner when owner is authenticated
// and a hosted store exists, and the local store otherwise.
func (s Selector) For(owner string) (Store, Backend) {
	if owner != "" && s.Hosted != nil {
		return s.Hosted(owner), BackendHosted
	}
	return s.Local, BackendLocal
}

// HostedEnabled reports whether authenticated sessions get the hosted store.
func (s Selector) HostedEnabled() bool {
	return s.Hosted != nil
}

// Catalog returns the visible catalog for a store: defaults minus hidden
// entries, followed by custom entries.
func Catalog(ctx context.Context, s Store) ([]catalog.Ingredient, error) {
	custom, err := s.ListCustomIngredients(ctx)
	if err != nil {
		return nil, err
	}
	hidden, err := s.ListHiddenIngredients(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Visible(catalog.Defaults(), custom, hidden), nil
}
