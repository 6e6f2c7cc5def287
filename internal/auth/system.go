package auth

import (
	"context"

	"github.com/google/uuid"
)

// System defines user registration and credential exchange.
type System interface {
	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*Token, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
}
