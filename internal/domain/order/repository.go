package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Repository defines the persistence operations for orders
type Repository interface {
	shared.Repository[Order]
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[Order], error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Order, error)
	NextOrderSequence(ctx context.Context) (int64, error)
}
