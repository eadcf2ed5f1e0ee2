// Package entity defines the domain models for the membership feature.
package entity

import "time"

// Membership is the join record linking a user to a library.
// The composite unique index rejects a second membership for the same
// (user, library) pair, including under concurrent join requests.
type Membership struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:uniq_user_library"`
	LibraryID uint `gorm:"not null;uniqueIndex:uniq_user_library"`
	CreatedAt time.Time
}
