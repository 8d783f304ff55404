package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/cart"
)

// AddItemRequest adds a product or a custom design line to the cart.
// Exactly one of ProductID and CustomDesignID must be set.
type AddItemRequest struct {
	ProductID      *uuid.UUID `json:"product_id"`
	CustomDesignID *uuid.UUID `json:"custom_design_id"`
	Quantity       int        `json:"quantity" binding:"required,min=1,max=100"`
}

// UpdateQuantityRequest changes the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=100"`
}

// CartItemResponse is one line of the cart
type CartItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      *uuid.UUID      `json:"product_id,omitempty"`
	CustomDesignID *uuid.UUID      `json:"custom_design_id,omitempty"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CartResponse is the public representation of a shopping cart
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	SessionID string             `json:"session_id,omitempty"`
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a cart aggregate to its response form
func ToCartResponse(c *cart.ShoppingCart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		items = append(items, CartItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			CustomDesignID: item.CustomDesignID,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Subtotal:       item.Subtotal(),
		})
	}

	return CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		SessionID: c.SessionID,
		Items:     items,
		Total:     c.Total(),
		UpdatedAt: c.UpdatedAt,
	}
}
