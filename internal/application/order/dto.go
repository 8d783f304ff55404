package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// OrderItemInput is one line of a checkout request. Exactly one of
// ProductID and CustomDesignID must be set.
type OrderItemInput struct {
	ProductID      *uuid.UUID `json:"product_id"`
	VariantID      *uuid.UUID `json:"variant_id"`
	CustomDesignID *uuid.UUID `json:"custom_design_id"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the checkout input
type CreateOrderRequest struct {
	ShippingAddressID uuid.UUID        `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uuid.UUID        `json:"billing_address_id" binding:"required"`
	Items             []OrderItemInput `json:"items" binding:"required,min=1"`
	PaymentMethod     string           `json:"payment_method" binding:"required"`
	ShippingMethod    string           `json:"shipping_method" binding:"required"`
	TaxAmount         decimal.Decimal  `json:"tax_amount"`
	ShippingCost      decimal.Decimal  `json:"shipping_cost"`
	DiscountAmount    decimal.Decimal  `json:"discount_amount"`
	Notes             string           `json:"notes" binding:"max=500"`
	IPAddress         string           `json:"-"`
	UserAgent         string           `json:"-"`
}

// TransitionRequest carries the optional note for a status transition
type TransitionRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// OrderListFilter carries listing parameters for a user's orders
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          uuid.UUID       `json:"product_id"`
	VariantID          *uuid.UUID      `json:"variant_id,omitempty"`
	CustomDesignID     *uuid.UUID      `json:"custom_design_id,omitempty"`
	ProductName        string          `json:"product_name"`
	VariantDescription string          `json:"variant_description,omitempty"`
	DesignPreviewURL   string          `json:"design_preview_url,omitempty"`
	OriginalProductID  *uuid.UUID      `json:"original_product_id,omitempty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// StatusHistoryResponse records one status transition
type StatusHistoryResponse struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse is the public representation of an order
type OrderResponse struct {
	ID                uuid.UUID               `json:"id"`
	OrderNumber       string                  `json:"order_number"`
	UserID            uuid.UUID               `json:"user_id"`
	Status            string                  `json:"status"`
	ShippingAddressID uuid.UUID               `json:"shipping_address_id"`
	BillingAddressID  uuid.UUID               `json:"billing_address_id"`
	Subtotal          decimal.Decimal         `json:"subtotal"`
	TaxAmount         decimal.Decimal         `json:"tax_amount"`
	ShippingCost      decimal.Decimal         `json:"shipping_cost"`
	DiscountAmount    decimal.Decimal         `json:"discount_amount"`
	Total             decimal.Decimal         `json:"total"`
	PaymentMethod     string                  `json:"payment_method,omitempty"`
	ShippingMethod    string                  `json:"shipping_method,omitempty"`
	PaidAt            *time.Time              `json:"paid_at,omitempty"`
	CancelledAt       *time.Time              `json:"cancelled_at,omitempty"`
	DeliveredAt       *time.Time              `json:"delivered_at,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	Items             []OrderItemResponse     `json:"items"`
	StatusHistory     []StatusHistoryResponse `json:"status_history"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// OrderListResponse is a paginated list of orders
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			VariantID:          item.VariantID,
			CustomDesignID:     item.CustomDesignID,
			ProductName:        item.ProductName,
			VariantDescription: item.VariantDescription,
			DesignPreviewURL:   item.DesignPreviewURL,
			OriginalProductID:  item.OriginalProductID,
			UnitPrice:          item.UnitPrice,
			Quantity:           item.Quantity,
			Subtotal:           item.Subtotal,
		})
	}

	history := make([]StatusHistoryResponse, 0, len(o.StatusHistory))
	for i := range o.StatusHistory {
		h := &o.StatusHistory[i]
		history = append(history, StatusHistoryResponse{
			OldStatus: string(h.OldStatus),
			NewStatus: string(h.NewStatus),
			ChangedBy: h.ChangedBy,
			Notes:     h.Notes,
			CreatedAt: h.CreatedAt,
		})
	}

	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Status:            string(o.Status),
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		Subtotal:          o.Subtotal,
		TaxAmount:         o.TaxAmount,
		ShippingCost:      o.ShippingCost,
		DiscountAmount:    o.DiscountAmount,
		Total:             o.Total,
		PaymentMethod:     string(o.PaymentMethod),
		ShippingMethod:    string(o.ShippingMethod),
		PaidAt:            o.PaidAt,
		CancelledAt:       o.CancelledAt,
		DeliveredAt:       o.DeliveredAt,
		Notes:             o.Notes,
		Items:             items,
		StatusHistory:     history,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// ToOrderListResponse converts a paginated domain result
func ToOrderListResponse(paginated shared.Paginated[order.Order]) OrderListResponse {
	items := make([]OrderResponse, 0, len(paginated.Items))
	for i := range paginated.Items {
		items = append(items, ToOrderResponse(&paginated.Items[i]))
	}
	return OrderListResponse{
		Items:      items,
		Total:      paginated.Total,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}
}
