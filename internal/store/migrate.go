package store

import (
	"context"
	"fmt"

	applog "parfumai/internal/log"
)

// MigrationReport counts the records copied by Migrate.
type MigrationReport struct {
	Recipes           int `json:"recipes"`
	CustomIngredients int `json:"customIngredients"`
	HiddenIngredients int `json:"hiddenIngredients"`
}

// Total is the number of records copied.
func (r MigrationReport) Total() int {
	return r.Recipes + r.CustomIngredients + r.HiddenIngredients
}

// Migrate copies every recipe, custom ingredient and hidden id from one store
// into another and removes each collection from the source once it has been
// copied completely. Records are copied as is; there is no conflict
// resolution. A failure stops the migration and leaves the failed collection
// in the source.
func Migrate(ctx context.Context, from, to Store) (MigrationReport, error) {
	var report MigrationReport

	recipes, err := from.ListRecipes(ctx)
	if err != nil {
		return report, fmt.Errorf("store: migrate recipes: %w", err)
	}
	// Oldest first so the destination keeps the original ordering.
	for i := len(recipes) - 1; i >= 0; i-- {
		if _, err := to.CreateRecipe(ctx, recipes[i]); err != nil {
			return report, fmt.Errorf("store: migrate recipe %s: %w", recipes[i].ID, err)
		}
		report.Recipes++
	}
	for _, recipe := range recipes {
		if err := from.DeleteRecipe(ctx, recipe.ID); err != nil {
			return report, fmt.Errorf("store: clear migrated recipe %s: %w", recipe.ID, err)
		}
	}

	custom, err := from.ListCustomIngredients(ctx)
	if err != nil {
		return report, fmt.Errorf("store: migrate custom ingredients: %w", err)
	}
	for _, ingredient := range custom {
		if _, err := to.CreateCustomIngredient(ctx, ingredient); err != nil {
			return report, fmt.Errorf("store: migrate custom ingredient %s: %w", ingredient.ID, err)
		}
		report.CustomIngredients++
	}
	for _, ingredient := range custom {
		if err := from.DeleteCustomIngredient(ctx, ingredient.ID); err != nil {
			return report, fmt.Errorf("store: clear migrated custom ingredient %s: %w", ingredient.ID, err)
		}
	}

	hidden, err := from.ListHiddenIngredients(ctx)
	if err != nil {
		return report, fmt.Errorf("store: migrate hidden ingredients: %w", err)
	}
	for _, id := range hidden {
		if err := to.HideIngredient(ctx, id); err != nil {
			return report, fmt.Errorf("store: migrate hidden ingredient %s: %w", id, err)
		}
		report.HiddenIngredients++
	}
	for _, id := range hidden {
		if err := from.UnhideIngredient(ctx, id); err != nil {
			return report, fmt.Errorf("store: clear migrated hidden ingredient %s: %w", id, err)
		}
	}

	if report.Total() > 0 {
		applog.Info(ctx, "migrated local data",
			"recipes", report.Recipes,
			"custom_ingredients", report.CustomIngredients,
			"hidden_ingredients", report.HiddenIngredients,
		)
	}
	return report, nil
}
