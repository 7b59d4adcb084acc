package entity

import "time"

// Tag is a user-owned label attached to recipes.
// Uniqueness of (user_id, name) is a real constraint in the schema; the
// reconciler additionally relies on it to recover find-or-create races.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tag_owner_name"`
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_tag_owner_name"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
