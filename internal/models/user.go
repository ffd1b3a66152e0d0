package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Ref returns the populated reference shape used inside story/comment JSON.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID.String(), Username: u.Username}
}

// Profile is a user as returned by /me and /users endpoints: the account
// fields plus the follow graph, password hash excluded.
type Profile struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}
