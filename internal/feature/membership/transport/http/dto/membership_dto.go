// Package dto defines data transfer objects for the membership HTTP API.
package dto

// MembershipRes represents a created membership in API responses.
type MembershipRes struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	LibraryID uint `json:"library_id"`
}

// LibraryItem represents a joined library in the /me/libraries response.
type LibraryItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	FloorCount uint   `json:"floor_count"`
	FloorArea  uint   `json:"floor_area"`
}

// MemberItem represents a library member in the members listing.
// It exposes only public profile fields.
type MemberItem struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
