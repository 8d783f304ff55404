package address

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Repository defines the persistence operations for addresses
type Repository interface {
	shared.Repository[Address]
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	FindPrimaryByUser(ctx context.Context, userID uuid.UUID) (*Address, error)
	// SaveAsPrimary persists the address and demotes the user's other
	// primary addresses atomically, so there is never more than one
	SaveAsPrimary(ctx context.Context, addr *Address) error
}
