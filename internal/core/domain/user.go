package domain

import "time"

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated caller bound to a bearer token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Identity returns the token subject for u.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}
