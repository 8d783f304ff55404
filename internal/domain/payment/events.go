package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/shared"
)

// Aggregate type constant for Payment
const AggregateTypePayment = "Payment"

// Payment domain event types
const (
	EventTypePaymentCreated  = "PaymentCreated"
	EventTypePaymentApproved = "PaymentApproved"
	EventTypePaymentRejected = "PaymentRejected"
	EventTypePaymentRefunded = "PaymentRefunded"
)

// PaymentCreatedEvent is published when a payment record is created
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Gateway Gateway         `json:"gateway"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, p.ID, AggregateTypePayment),
		OrderID:         p.OrderID,
		Gateway:         p.Gateway,
		Amount:          p.Amount,
	}
}

// PaymentApprovedEvent is published when a gateway approves a payment
type PaymentApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	Gateway       Gateway         `json:"gateway"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewPaymentApprovedEvent creates a new PaymentApprovedEvent
func NewPaymentApprovedEvent(p *Payment) *PaymentApprovedEvent {
	return &PaymentApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApproved, p.ID, AggregateTypePayment),
		OrderID:         p.OrderID,
		Gateway:         p.Gateway,
		TransactionID:   p.TransactionID,
		Amount:          p.Amount,
	}
}

// PaymentRejectedEvent is published when a gateway rejects a payment
type PaymentRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Gateway Gateway   `json:"gateway"`
}

// NewPaymentRejectedEvent creates a new PaymentRejectedEvent
func NewPaymentRejectedEvent(p *Payment) *PaymentRejectedEvent {
	return &PaymentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRejected, p.ID, AggregateTypePayment),
		OrderID:         p.OrderID,
		Gateway:         p.Gateway,
	}
}

// PaymentRefundedEvent is published when a payment is refunded
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewPaymentRefundedEvent creates a new PaymentRefundedEvent
func NewPaymentRefundedEvent(p *Payment) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRefunded, p.ID, AggregateTypePayment),
		OrderID:         p.OrderID,
		Amount:          p.Amount,
	}
}
