package entity

import "time"

// Ingredient is a user-owned ingredient attached to recipes.
// Same shape and ownership rules as Tag, with its own association set.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredient_owner_name"`
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_ingredient_owner_name"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
