package simulations

import (
	"context"

	"github.com/google/uuid"
)

// System runs dispatch simulations and retrieves archived runs.
type System interface {
	Simulate(ctx context.Context, p Params) (*Result, error)
	Find(ctx context.Context, id uuid.UUID) (*Result, error)
}
