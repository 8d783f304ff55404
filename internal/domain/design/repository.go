package design

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Repository defines the persistence operations for custom designs
type Repository interface {
	shared.Repository[CustomDesign]
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CustomDesign, error)
	FindByBaseProduct(ctx context.Context, productID uuid.UUID) ([]CustomDesign, error)
}
