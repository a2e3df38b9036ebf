// Package hosted implements the account backed store on gorm. Every query
// is scoped to a single owner id.
package hosted

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parfumai/internal/catalog"
	"parfumai/internal/store"
	"parfumai/models"
)

// Store is a store.Store bound to one owner.
type Store struct {
	db    *gorm.DB
	owner string
}

var _ store.Store = (*Store)(nil)

// New returns the hosted store for owner.
func New(db *gorm.DB, owner string) *Store {
	return &Store{db: db, owner: owner}
}

// Factory adapts a database handle to store.Selector's Hosted field. A nil
// handle yields a nil factory so the selector serves everything locally.
func Factory(db *gorm.DB) func(owner string) store.Store {
	if db == nil {
		return nil
	}
	return func(owner string) store.Store {
		return New(db, owner)
	}
}

// Owner returns the owner id this store is scoped to.
func (s *Store) Owner() string {
	return s.owner
}

func (s *Store) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("owner_id = ?", s.owner)
}

// ListRecipes returns the owner's recipes, newest first.
func (s *Store) ListRecipes(ctx context.Context) ([]store.Recipe, error) {
	var rows []models.Recipe
	if err := s.scoped(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list recipes: %w", err)
	}
	recipes := make([]store.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, recipeFromModel(row))
	}
	return recipes, nil
}

// CreateRecipe inserts a recipe. Re-inserting an existing id is ignored so
// a repeated migration does not fail.
func (s *Store) CreateRecipe(ctx context.Context, recipe store.Recipe) (store.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}
	row := recipeToModel(recipe, s.owner)
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return store.Recipe{}, fmt.Errorf("store: create recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe removes one of the owner's recipes.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	result := s.scoped(ctx).Where("id = ?", id).Delete(&models.Recipe{})
	if result.Error != nil {
		return fmt.Errorf("store: delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListCustomIngredients returns the owner's custom ingredients in insertion order.
func (s *Store) ListCustomIngredients(ctx context.Context) ([]catalog.Ingredient, error) {
	var rows []models.CustomIngredient
	if err := s.scoped(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list custom ingredients: %w", err)
	}
	items := make([]catalog.Ingredient, 0, len(rows))
	for _, row := range rows {
		items = append(items, catalog.Ingredient{
			ID:          row.ID,
			Name:        row.Name,
			Type:        catalog.Type(row.Type),
			Category:    row.Category,
			IsCustom:    true,
			Description: row.Description,
			Purpose:     row.Purpose,
		})
	}
	return items, nil
}

// CreateCustomIngredient inserts a custom ingredient for the owner.
func (s *Store) CreateCustomIngredient(ctx context.Context, ingredient catalog.Ingredient) (catalog.Ingredient, error) {
	if ingredient.ID == "" {
		ingredient.ID = "custom-" + uuid.NewString()
	}
	ingredient.IsCustom = true
	row := models.CustomIngredient{
		ID:          ingredient.ID,
		OwnerID:     s.owner,
		Name:        ingredient.Name,
		Type:        string(ingredient.Type),
		Category:    ingredient.Category,
		Description: ingredient.Description,
		Purpose:     ingredient.Purpose,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return catalog.Ingredient{}, fmt.Errorf("store: create custom ingredient: %w", err)
	}
	return ingredient, nil
}

// DeleteCustomIngredient removes one of the owner's custom ingredients.
func (s *Store) DeleteCustomIngredient(ctx context.Context, id string) error {
	result := s.scoped(ctx).Where("id = ?", id).Delete(&models.CustomIngredient{})
	if result.Error != nil {
		return fmt.Errorf("store: delete custom ingredient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListHiddenIngredients returns the default ids hidden by the owner.
func (s *Store) ListHiddenIngredients(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := s.scoped(ctx).Model(&models.HiddenIngredient{}).Order("id ASC").Pluck("ingredient_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("store: list hidden ingredients: %w", err)
	}
	return ids, nil
}

// HideIngredient marks a default ingredient hidden. Duplicates are ignored.
func (s *Store) HideIngredient(ctx context.Context, id string) error {
	row := models.HiddenIngredient{OwnerID: s.owner, IngredientID: id}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "ingredient_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: hide ingredient: %w", err)
	}
	return nil
}

// UnhideIngredient removes the hidden marker. Missing markers are ignored.
func (s *Store) UnhideIngredient(ctx context.Context, id string) error {
	if err := s.scoped(ctx).Where("ingredient_id = ?", id).Delete(&models.HiddenIngredient{}).Error; err != nil {
		return fmt.Errorf("store: unhide ingredient: %w", err)
	}
	return nil
}

func recipeToModel(recipe store.Recipe, owner string) models.Recipe {
	ingredients := make([]models.RecipeIngredient, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, models.RecipeIngredient{
			ID:          ingredient.ID,
			Name:        ingredient.Name,
			Type:        string(ingredient.Type),
			Category:    ingredient.Category,
			IsCustom:    ingredient.IsCustom,
			Description: ingredient.Description,
			Purpose:     ingredient.Purpose,
		})
	}
	return models.Recipe{
		ID:            recipe.ID,
		OwnerID:       owner,
		Name:          recipe.Name,
		Ingredients:   ingredients,
		Gender:        recipe.Gender,
		Season:        recipe.Season,
		DominantScent: recipe.DominantScent,
		Body:          recipe.Recipe,
		Volume:        recipe.Volume,
		CreatedAt:     recipe.CreatedAt,
	}
}

func recipeFromModel(row models.Recipe) store.Recipe {
	ingredients := make([]catalog.Ingredient, 0, len(row.Ingredients))
	for _, ingredient := range row.Ingredients {
		ingredients = append(ingredients, catalog.Ingredient{
			ID:          ingredient.ID,
			Name:        ingredient.Name,
			Type:        catalog.Type(ingredient.Type),
			Category:    ingredient.Category,
			IsCustom:    ingredient.IsCustom,
			Description: ingredient.Description,
			Purpose:     ingredient.Purpose,
		})
	}
	return store.Recipe{
		ID:            row.ID,
		Name:          row.Name,
		Ingredients:   ingredients,
		Gender:        row.Gender,
		Season:        row.Season,
		DominantScent: row.DominantScent,
		Recipe:        row.Body,
		Volume:        row.Volume,
		CreatedAt:     row.CreatedAt,
	}
}
