package identity

import (
	"context"

	"github.com/tienda/backend/internal/domain/shared"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	shared.Repository[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
