package dto

// UserRes represents the current user in the /me response.
// The password hash is intentionally absent.
type UserRes struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
