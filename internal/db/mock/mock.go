package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "parfumai/internal/log"
	"parfumai/models"
)

// Demo credentials for the seeded account.
const (
	DemoEmail    = "demo@parfumai.app"
	DemoPassword = "atelier-demo"
)

// New returns an in-memory sqlite database seeded with a demo account and a
// saved recipe.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:parfumai-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.CustomIngredient{},
		&models.HiddenIngredient{},
	); err != nil {
		return nil, err
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return nil, err
	}
	if users == 0 {
		if err := seed(ctx, db); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Demo Perfumer",
		Email:        DemoEmail,
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	owner := user.OwnerID()

	custom := models.CustomIngredient{
		ID:          "custom-demo-fig-leaf",
		OwnerID:     owner,
		Name:        "Fig Leaf Absolute",
		Type:        "raw_material",
		Category:    "green",
		Description: "Milky green leaf facet with a coconut undertone.",
		Purpose:     "Adds a shaded, natural heart to citrus openings.",
	}
	if err := db.WithContext(ctx).Create(&custom).Error; err != nil {
		return err
	}

	recipe := models.Recipe{
		ID:      "demo-recipe-spring-garden",
		OwnerID: owner,
		Name:    "Spring Garden",
		Ingredients: []models.RecipeIngredient{
			{ID: "r3", Name: "Bergamot Peel", Type: "raw_material", Category: "citrus"},
			{ID: custom.ID, Name: custom.Name, Type: custom.Type, Category: custom.Category, IsCustom: true},
			{ID: "e1", Name: "Rose Essence", Type: "essence", Category: "floral"},
		},
		Gender:        "unisex",
		Season:        "spring",
		DominantScent: "Floral",
		Body: "Spring Garden (50ml)\n\n" +
			"Essences (25% = 12.5ml): Rose Essence 12.5ml\n" +
			"Raw materials (10% = 5ml): Bergamot Peel 2.5ml, Fig Leaf Absolute 2.5ml\n" +
			"Solvent (65% = 32.5ml): perfumer's alcohol\n",
		Volume: 50,
	}
	if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return err
	}

	hidden := models.HiddenIngredient{OwnerID: owner, IngredientID: "r7"}
	if err := db.WithContext(ctx).Create(&hidden).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded", "owner", owner)
	return nil
}
