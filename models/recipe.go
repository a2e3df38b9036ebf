package models

import "time"

// Recipe is a saved generation result. Rows are never updated after insert.
type Recipe struct {
	ID            string             `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID       string             `gorm:"index;not null;type:varchar(128)" json:"owner_id"`
	Name          string             `gorm:"not null" json:"name"`
	Ingredients   []RecipeIngredient `gorm:"serializer:json;type:text" json:"ingredients"`
	Gender        string             `gorm:"type:varchar(16);not null" json:"gender"`
	Season        string             `gorm:"type:varchar(16);not null" json:"season"`
	DominantScent string             `json:"dominant_scent"`
	Body          string             `gorm:"type:text;not null" json:"recipe"`
	Volume        int                `gorm:"not null;default:50" json:"volume"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// RecipeIngredient is the ingredient snapshot stored inside a recipe's JSON column.
type RecipeIngredient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	IsCustom    bool   `json:"isCustom,omitempty"`
	Description string `json:"description,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
}
