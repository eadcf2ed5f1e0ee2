// Package entity defines the domain models for the library feature.
package entity

import "time"

// Library represents a physical library that users can join.
// FloorCount and FloorArea are unsigned: negative values are unrepresentable.
type Library struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	FloorCount uint      `gorm:"not null;default:0"`
	FloorArea  uint      `gorm:"not null;default:0"` // square meters
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
