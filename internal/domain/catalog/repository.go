package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	AssignCategory(ctx context.Context, productID, categoryID uuid.UUID) error
	UnassignCategory(ctx context.Context, productID, categoryID uuid.UUID) error
}

// CategoryRepository defines the persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	FindRoots(ctx context.Context) ([]Category, error)
}

// ReviewRepository defines the persistence operations for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductReview, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]ProductReview, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
	Save(ctx context.Context, review *ProductReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}
