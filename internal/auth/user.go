// Package auth provides user registration, password login, and bearer token
// verification for the API.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered operator account. The password hash never leaves the repository.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterCommand contains the data required to create a user.
type RegisterCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Identity is the authenticated caller carried on the request context.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
