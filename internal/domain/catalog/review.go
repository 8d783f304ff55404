package catalog

import (
	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// ProductReview is a user's rating of a product on a 1 to 5 scale
type ProductReview struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"type:smallint;not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductReview) TableName() string {
	return "product_reviews"
}

// NewProductReview creates a review for a product
func NewProductReview(productID, userID uuid.UUID, rating int, comment string) (*ProductReview, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &ProductReview{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
