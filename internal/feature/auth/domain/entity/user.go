// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered member of the service.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It is stored lowercased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never store a plaintext password.
	Password string `gorm:"size:255;not null"`

	// FirstName is the user's given name.
	FirstName string `gorm:"size:100;not null"`

	// LastName is the user's family name.
	LastName string `gorm:"size:100;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
