package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber       string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippingAddressID uuid.UUID `gorm:"type:uuid;not null"`
	BillingAddressID  uuid.UUID `gorm:"type:uuid;not null"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PaymentMethod  string `gorm:"type:varchar(20)"`
	ShippingMethod string `gorm:"type:varchar(20)"`

	PaidAt      *time.Time
	CancelledAt *time.Time
	DeliveredAt *time.Time

	IPAddress     string `gorm:"type:varchar(45)"`
	UserAgent     string `gorm:"type:varchar(255)"`
	Notes         string `gorm:"type:text"`
	InternalNotes string `gorm:"type:text"`

	Version int `gorm:"not null;default:1"`

	Items         []OrderItemModel          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusHistoryModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for order lines
type OrderItemModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null"`
	VariantID      *uuid.UUID `gorm:"type:uuid"`
	CustomDesignID *uuid.UUID `gorm:"type:uuid"`

	ProductName        string `gorm:"type:varchar(100);not null"`
	VariantDescription string `gorm:"type:varchar(100)"`
	DesignPreviewURL   string `gorm:"type:varchar(500)"`

	OriginalProductID *uuid.UUID `gorm:"type:uuid"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderStatusHistoryModel records one status transition
type OrderStatusHistoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OldStatus string    `gorm:"type:varchar(20);not null"`
	NewStatus string    `gorm:"type:varchar(20);not null"`
	ChangedBy string    `gorm:"type:varchar(100);not null"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderStatusHistoryModel) TableName() string {
	return "order_status_history"
}

// FromOrder converts a domain order to its persistence model
func FromOrder(o *order.Order) *OrderModel {
	m := &OrderModel{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		Status:            string(o.Status),
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
		IPAddress:         o.IPAddress,
		UserAgent:         o.UserAgent,
		Notes:             o.Notes,
		InternalNotes:     o.InternalNotes,
		Version:           o.Version,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		m.Items = append(m.Items, OrderItemModel{
			ID:                 item.ID,
			OrderID:            o.ID,
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
			CreatedAt:          item.CreatedAt,
			UpdatedAt:          item.UpdatedAt,
		})
	}

	m.StatusHistory = make([]OrderStatusHistoryModel, 0, len(o.StatusHistory))
	for i := range o.StatusHistory {
		h := &o.StatusHistory[i]
		m.StatusHistory = append(m.StatusHistory, OrderStatusHistoryModel{
			ID:        h.ID,
			OrderID:   o.ID,
			OldStatus: string(h.OldStatus),
			NewStatus: string(h.NewStatus),
			ChangedBy: h.ChangedBy,
			Notes:     h.Notes,
			CreatedAt: h.CreatedAt,
			UpdatedAt: h.UpdatedAt,
		})
	}

	return m
}

// ToDomain converts the persistence model to a domain order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrderNumber:       m.OrderNumber,
		UserID:            m.UserID,
		ShippingAddressID: m.ShippingAddressID,
		BillingAddressID:  m.BillingAddressID,
		Status:            order.Status(m.Status),
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		ShippingCost:      m.ShippingCost,
		DiscountAmount:    m.DiscountAmount,
		Total:             m.Total,
		PaymentMethod:     order.PaymentMethod(m.PaymentMethod),
		ShippingMethod:    order.ShippingMethod(m.ShippingMethod),
		PaidAt:            m.PaidAt,
		CancelledAt:       m.CancelledAt,
		DeliveredAt:       m.DeliveredAt,
		IPAddress:         m.IPAddress,
		UserAgent:         m.UserAgent,
		Notes:             m.Notes,
		InternalNotes:     m.InternalNotes,
	}

	o.Items = make([]order.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		item := &m.Items[i]
		o.Items = append(o.Items, order.OrderItem{
			BaseEntity: shared.BaseEntity{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			OrderID:            item.OrderID,
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

	o.StatusHistory = make([]order.StatusHistory, 0, len(m.StatusHistory))
	for i := range m.StatusHistory {
		h := &m.StatusHistory[i]
		o.StatusHistory = append(o.StatusHistory, order.StatusHistory{
			BaseEntity: shared.BaseEntity{
				ID:        h.ID,
				CreatedAt: h.CreatedAt,
				UpdatedAt: h.UpdatedAt,
			},
			OrderID:   h.OrderID,
			OldStatus: order.Status(h.OldStatus),
			NewStatus: order.Status(h.NewStatus),
			ChangedBy: h.ChangedBy,
			Notes:     h.Notes,
		})
	}

	return o
}
