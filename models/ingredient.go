package models

import "time"

// CustomIngredient is a catalog entry added by a user.
type CustomIngredient struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID     string    `gorm:"index;not null;type:varchar(128)" json:"owner_id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"type:varchar(16);not null" json:"type"`
	Category    string    `json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Purpose     string    `gorm:"type:text" json:"purpose"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// HiddenIngredient suppresses one default catalog entry for an owner.
type HiddenIngredient struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	OwnerID      string    `gorm:"uniqueIndex:idx_hidden_owner_ingredient;not null;type:varchar(128)" json:"owner_id"`
	IngredientID string    `gorm:"uniqueIndex:idx_hidden_owner_ingredient;not null;type:varchar(64)" json:"ingredient_id"`
	CreatedAt    time.Time `json:"created_at"`
}
