package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Token errors. ErrInvalidToken covers malformed, badly signed, and expired
// tokens alike; ErrMalformedClaims means the token verified but carries no
// user identity.
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrMalformedClaims = errors.New("token missing user identity")

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
