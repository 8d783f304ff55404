package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/payment"
	"github.com/tienda/backend/internal/domain/shared"
)

// PaymentModel is the persistence model for payments. One row covers
// every gateway; gateway-specific data lives in the response JSON.
type PaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Gateway       string          `gorm:"type:varchar(20);not null"`
	TransactionID string          `gorm:"type:varchar(100);index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'created';index"`

	GatewayResponse map[string]any `gorm:"type:jsonb;serializer:json"`

	ApprovedAt *time.Time
	RejectedAt *time.Time
	RefundedAt *time.Time

	Version int `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// FromPayment converts a domain payment to its persistence model
func FromPayment(p *payment.Payment) *PaymentModel {
	return &PaymentModel{
		ID:              p.ID,
		OrderID:         p.OrderID,
		Gateway:         string(p.Gateway),
		TransactionID:   p.TransactionID,
		Amount:          p.Amount,
		Status:          string(p.Status),
		GatewayResponse: p.GatewayResponse,
		ApprovedAt:      p.ApprovedAt,
		RejectedAt:      p.RejectedAt,
		RefundedAt:      p.RefundedAt,
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToDomain converts the persistence model to a domain payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrderID:         m.OrderID,
		Gateway:         payment.Gateway(m.Gateway),
		TransactionID:   m.TransactionID,
		Amount:          m.Amount,
		Status:          payment.Status(m.Status),
		GatewayResponse: m.GatewayResponse,
		ApprovedAt:      m.ApprovedAt,
		RejectedAt:      m.RejectedAt,
		RefundedAt:      m.RefundedAt,
	}
}
