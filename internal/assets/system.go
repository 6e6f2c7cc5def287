package assets

import (
	"context"

	"github.com/google/uuid"
)

// System defines the interface for asset storage and analysis.
type System interface {
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]Asset, error)
	Find(ctx context.Context, id uuid.UUID) (*Asset, error)
	Create(ctx context.Context, cmd CreateCommand) (*Asset, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DigitalTwin(ctx context.Context, id uuid.UUID) (*DigitalTwin, error)
}
