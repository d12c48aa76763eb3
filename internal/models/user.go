package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}

// AuthPayload is returned by sign-up and sign-in: a signed identity
// token plus the user it is bound to.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
