// Package users provides the domain system for platform user accounts:
// registration, credential verification, and profile management.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered platform account.
// The password hash is never serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       *string   `json:"full_name,omitempty"`
	Disabled       bool      `json:"disabled"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to register a new user.
type CreateCommand struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Password string  `json:"password"`
}

// UpdateCommand contains the fields a user may change on their own account.
// A nil Password leaves the stored hash untouched.
type UpdateCommand struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}
