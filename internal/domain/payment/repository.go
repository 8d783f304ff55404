package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Repository defines the persistence operations for payments
type Repository interface {
	shared.Repository[Payment]
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
}
