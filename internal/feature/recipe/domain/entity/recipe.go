// Package entity defines the domain entities for the recipe feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe owned by a single user.
// The owner reference is write-once: it is set on creation and never
// changed by updates.
type Recipe struct {
	// ID is the unique identifier for the recipe.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Every query against recipes is
	// scoped to this column.
	UserID uint `gorm:"index;not null"`

	// Title is the recipe's display title. Required, non-empty.
	Title string `gorm:"size:255;not null"`

	// Description is optional free-form text.
	Description string `gorm:"type:text"`

	// TimeMinutes is the time to prepare in minutes. Non-negative.
	TimeMinutes uint `gorm:"not null;default:0"`

	// Price is the fixed-point price of the recipe. Non-negative.
	Price decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`

	// Link is an optional external URL.
	Link string `gorm:"size:255"`

	// Image is the stored filename of the attached image, empty if none.
	Image string `gorm:"size:255"`

	// Tags is the recipe's tag association set.
	Tags []Tag `gorm:"many2many:recipe_tags"`

	// Ingredients is the recipe's ingredient association set.
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
