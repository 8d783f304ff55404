package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// CartItem is one line of a shopping cart. It references either a
// catalog product or a custom design, never both and never neither.
// Price is computed once at creation and is immutable afterwards.
type CartItem struct {
	shared.BaseEntity
	CartID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index"`
	CustomDesignID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity       int             `gorm:"not null;default:1"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

func newProductItem(cartID uuid.UUID, product *catalog.Product, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  &product.ID,
		Quantity:   quantity,
		Price:      product.Price,
	}, nil
}

func newDesignItem(cartID uuid.UUID, customDesign *design.CustomDesign, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	base := customDesign.BaseProduct
	price := base.Price
	if base.BasePrice != nil {
		price = *base.BasePrice
	}

	return &CartItem{
		BaseEntity:     shared.NewBaseEntity(),
		CartID:         cartID,
		CustomDesignID: &customDesign.ID,
		Quantity:       quantity,
		Price:          price,
	}, nil
}

// Subtotal returns price times quantity
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsDesign returns true if the line references a custom design
func (i *CartItem) IsDesign() bool {
	return i.CustomDesignID != nil
}

// Validate checks the product-or-design invariant, mirrored by a check
// constraint on the table
func (i *CartItem) Validate() error {
	if i.ProductID == nil && i.CustomDesignID == nil {
		return shared.ErrEmptyCartLine
	}
	return nil
}

func (i *CartItem) changeQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	return nil
}

const maxQuantityPerLine = 100

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > maxQuantityPerLine {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot exceed 100 per line")
	}
	return nil
}
