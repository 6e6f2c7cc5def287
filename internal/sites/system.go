package sites

import (
	"context"

	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for site storage and retrieval operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Site], error)
	Find(ctx context.Context, id uuid.UUID) (*Site, error)
	Create(ctx context.Context, cmd CreateCommand) (*Site, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
