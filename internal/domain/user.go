package domain

import "time"

// Account is the persisted identity record for a platform user.
// PasswordHash always stores a bcrypt hash, never the plaintext.
type Account struct {
	ID           string
	Name         string // full name, globally unique
	Email        string // globally unique, stored lowercase
	PasswordHash string
	Role         Role
	Verified     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
