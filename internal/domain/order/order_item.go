package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// OrderItem is one line of an order. Name, variant description and
// subtotal are snapshots computed at creation so later catalog changes
// never rewrite purchase history.
type OrderItem struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	VariantID      *uuid.UUID
	CustomDesignID *uuid.UUID

	ProductName        string
	VariantDescription string
	DesignPreviewURL   string

	// Set when the purchased product was later replaced in the catalog
	OriginalProductID *uuid.UUID

	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

func newOrderItem(orderID uuid.UUID, product *catalog.Product, variant *catalog.ProductVariant, quantity int) (*OrderItem, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	unitPrice := product.Price
	item := &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
	}

	if variant != nil {
		if variant.ProductID != product.ID {
			return nil, shared.NewDomainError("INVALID_VARIANT", "Variant does not belong to the product")
		}
		unitPrice = variant.EffectivePrice(product.Price)
		item.VariantID = &variant.ID
		item.VariantDescription = variant.Description
	}

	item.UnitPrice = unitPrice
	item.Subtotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	return item, nil
}

func newDesignOrderItem(orderID uuid.UUID, customDesign *design.CustomDesign, quantity int) (*OrderItem, error) {
	if customDesign == nil {
		return nil, shared.NewDomainError("INVALID_DESIGN", "Custom design is required")
	}
	if customDesign.BaseProduct == nil {
		return nil, shared.NewDomainError("INVALID_DESIGN", "Custom design must carry its base product")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	base := customDesign.BaseProduct
	unitPrice := base.Price
	if base.BasePrice != nil {
		unitPrice = *base.BasePrice
	}

	preview := customDesign.ThumbnailURL
	if preview == "" {
		preview = customDesign.ImageURL
	}

	return &OrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		OrderID:          orderID,
		ProductID:        base.ID,
		CustomDesignID:   &customDesign.ID,
		ProductName:      base.Name,
		DesignPreviewURL: preview,
		UnitPrice:        unitPrice,
		Quantity:         quantity,
		Subtotal:         unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// MarkProductReplaced records that the purchased product was replaced
// by another catalog product, keeping a reference to the original
func (i *OrderItem) MarkProductReplaced(newProductID uuid.UUID) error {
	if newProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Replacement product ID cannot be empty")
	}
	if i.OriginalProductID != nil {
		return shared.NewDomainError("ALREADY_REPLACED", "Item product was already replaced")
	}

	original := i.ProductID
	i.OriginalProductID = &original
	i.ProductID = newProductID

	return nil
}
