package domain

import "time"

// =============================================================================
// Admin Account
// =============================================================================

// Admin is a dashboard operator account. Password hashes are bcrypt;
// the clear password never leaves the login handler.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
