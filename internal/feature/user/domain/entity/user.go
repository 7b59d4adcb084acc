// Package entity defines the domain entities for the user feature.
package entity

import "time"

// User represents a registered account in the system.
// The email address is the user's identity and must be unique.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the normalized email address used for authentication.
	// The domain part is stored lower-cased, the local part as submitted.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never store a plaintext password.
	Password string `gorm:"size:255;not null"`

	// Name is the display name shown in profile responses.
	Name string `gorm:"size:255"`

	// IsActive controls whether the user may authenticate.
	// Inactive users keep their data but cannot obtain tokens.
	IsActive bool `gorm:"not null;default:true"`

	// IsStaff marks accounts created for administrative use.
	IsStaff bool `gorm:"not null;default:false"`

	// IsSuperuser marks accounts with unrestricted administrative rights.
	IsSuperuser bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
