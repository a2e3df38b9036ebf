// Package local stores anonymous data in the browser session. Each
// collection is a JSON array under its own session key.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"parfumai/internal/catalog"
	applog "parfumai/internal/log"
	"parfumai/internal/store"
)

// Session keys holding the JSON encoded collections.
const (
	RecipesKey           = "parfum-saved-recipes"
	CustomIngredientsKey = "parfum-custom-ingredients"
	HiddenDefaultsKey    = "parfum-hidden-defaults"
)

// Store implements store.Store on top of the request's session. Calls must
// carry a context loaded by the session manager.
type Store struct {
	sessions *scs.SessionManager
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

// New returns a session backed store.
func New(sessions *scs.SessionManager) *Store {
	return &Store{sessions: sessions, now: func() time.Time { return time.Now().UTC() }}
}

func load[T any](ctx context.Context, s *Store, key string) []T {
	raw := s.sessions.GetBytes(ctx, key)
	if len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		applog.Warn(ctx, "discarding unreadable session collection", "key", key, "error", err)
		return nil
	}
	return items
}

func save[T any](ctx context.Context, s *Store, key string, items []T) error {
	if len(items) == 0 {
		s.sessions.Remove(ctx, key)
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	s.sessions.Put(ctx, key, raw)
	return nil
}

// ListRecipes returns saved recipes, newest first.
func (s *Store) ListRecipes(ctx context.Context) ([]store.Recipe, error) {
	recipes := load[store.Recipe](ctx, s, RecipesKey)
	if recipes == nil {
		recipes = []store.Recipe{}
	}
	return recipes, nil
}

// CreateRecipe prepends the recipe, assigning an id and timestamp when missing.
func (s *Store) CreateRecipe(ctx context.Context, recipe store.Recipe) (store.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = s.now()
	}
	recipes := load[store.Recipe](ctx, s, RecipesKey)
	recipes = append([]store.Recipe{recipe}, recipes...)
	if err := save(ctx, s, RecipesKey, recipes); err != nil {
		return store.Recipe{}, err
	}
	return recipe, nil
}

// DeleteRecipe removes the recipe with the given id.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	recipes := load[store.Recipe](ctx, s, RecipesKey)
	for i, recipe := range recipes {
		if recipe.ID == id {
			return save(ctx, s, RecipesKey, append(recipes[:i], recipes[i+1:]...))
		}
	}
	return store.ErrNotFound
}

// ListCustomIngredients returns custom ingredients in insertion order.
func (s *Store) ListCustomIngredients(ctx context.Context) ([]catalog.Ingredient, error) {
	items := load[catalog.Ingredient](ctx, s, CustomIngredientsKey)
	if items == nil {
		items = []catalog.Ingredient{}
	}
	return items, nil
}

// CreateCustomIngredient appends a custom ingredient.
func (s *Store) CreateCustomIngredient(ctx context.Context, ingredient catalog.Ingredient) (catalog.Ingredient, error) {
	if ingredient.ID == "" {
		ingredient.ID = "custom-" + uuid.NewString()
	}
	ingredient.IsCustom = true
	items := load[catalog.Ingredient](ctx, s, CustomIngredientsKey)
	items = append(items, ingredient)
	if err := save(ctx, s, CustomIngredientsKey, items); err != nil {
		return catalog.Ingredient{}, err
	}
	return ingredient, nil
}

// DeleteCustomIngredient removes a custom ingredient.
func (s *Store) DeleteCustomIngredient(ctx context.Context, id string) error {
	items := load[catalog.Ingredient](ctx, s, CustomIngredientsKey)
	for i, item := range items {
		if item.ID == id {
			return save(ctx, s, CustomIngredientsKey, append(items[:i], items[i+1:]...))
		}
	}
	return store.ErrNotFound
}

// ListHiddenIngredients returns the hidden default ids.
func (s *Store) ListHiddenIngredients(ctx context.Context) ([]string, error) {
	ids := load[string](ctx, s, HiddenDefaultsKey)
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// HideIngredient records id as hidden. Hiding twice is a no-op.
func (s *Store) HideIngredient(ctx context.Context, id string) error {
	ids := load[string](ctx, s, HiddenDefaultsKey)
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return save(ctx, s, HiddenDefaultsKey, append(ids, id))
}

// UnhideIngredient clears the hidden marker for id. Unknown ids are ignored.
func (s *Store) UnhideIngredient(ctx context.Context, id string) error {
	ids := load[string](ctx, s, HiddenDefaultsKey)
	for i, existing := range ids {
		if existing == id {
			return save(ctx, s, HiddenDefaultsKey, append(ids[:i], ids[i+1:]...))
		}
	}
	return nil
}
