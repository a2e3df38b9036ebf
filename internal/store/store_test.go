package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parfumai/internal/catalog"
	"parfumai/internal/store"
	"parfumai/internal/store/hosted"
	"parfumai/internal/store/local"
	"parfumai/models"
)

func newHostedDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:store-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Recipe{}, &models.CustomIngredient{}, &models.HiddenIngredient{}))
	return db
}

func newLocal(t *testing.T) (*local.Store, context.Context) {
	t.Helper()

	sessions := scs.New()
	ctx, err := sessions.Load(context.Background(), "")
	require.NoError(t, err)
	return local.New(sessions), ctx
}

func TestSelector(t *testing.T) {
	t.Parallel()

	localStore, _ := newLocal(t)
	db := newHostedDB(t)

	withHosted := store.Selector{Hosted: hosted.Factory(db), Local: localStore}
	s, backend := withHosted.For("user:1")
	assert.Equal(t, store.BackendHosted, backend)
	assert.IsType(t, &hosted.Store{}, s)

	s, backend = withHosted.For("")
	assert.Equal(t, store.BackendLocal, backend)
	assert.Same(t, localStore, s)

	localOnly := store.Selector{Hosted: hosted.Factory(nil), Local: localStore}
	assert.False(t, localOnly.HostedEnabled())
	_, backend = localOnly.For("user:1")
	assert.Equal(t, store.BackendLocal, backend)
}

func TestMigrateCopiesEverythingAndClearsLocal(t *testing.T) {
	t.Parallel()

	from, ctx := newLocal(t)
	to := hosted.New(newHostedDB(t), "user:7")

	for _, name := range []string{"Older", "Newer"} {
		_, err := from.CreateRecipe(ctx, store.Recipe{
			Name:        name,
			Ingredients: []catalog.Ingredient{{ID: "e1", Name: "Rose Essence", Type: catalog.TypeEssence}},
			Gender:      "female",
			Season:      "spring",
			Recipe:      "text",
			Volume:      50,
		})
		require.NoError(t, err)
	}
	_, err := from.CreateCustomIngredient(ctx, catalog.Ingredient{Name: "Oud", Type: catalog.TypeEssence})
	require.NoError(t, err)
	require.NoError(t, from.HideIngredient(ctx, "r3"))
	require.NoError(t, to.HideIngredient(ctx, "r3"))

	report, err := store.Migrate(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, store.MigrationReport{Recipes: 2, CustomIngredients: 1, HiddenIngredients: 1}, report)
	assert.Equal(t, 4, report.Total())

	recipes, err := to.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	custom, err := to.ListCustomIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oud"}, catalog.Names(custom))
	hidden, err := to.ListHiddenIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, hidden)

	leftRecipes, err := from.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, leftRecipes)
	leftCustom, err := from.ListCustomIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, leftCustom)
	leftHidden, err := from.ListHiddenIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, leftHidden)
}

func TestMigrateWithNothingToCopy(t *testing.T) {
	t.Parallel()

	from, ctx := newLocal(t)
	to := hosted.New(newHostedDB(t), "user:8")
	_, err := to.CreateRecipe(ctx, store.Recipe{Name: "Existing", Recipe: "kept", Gender: "male", Season: "winter", Volume: 100})
	require.NoError(t, err)

	report, err := store.Migrate(ctx, from, to)
	require.NoError(t, err)
	assert.Zero(t, report.Total())

	recipes, err := to.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Existing"}, []string{recipes[0].Name})
}
