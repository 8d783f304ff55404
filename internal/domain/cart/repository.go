package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Repository defines the persistence operations for shopping carts
type Repository interface {
	shared.Repository[ShoppingCart]
	FindByUser(ctx context.Context, userID uuid.UUID) (*ShoppingCart, error)
	FindBySession(ctx context.Context, sessionID string) (*ShoppingCart, error)
}
