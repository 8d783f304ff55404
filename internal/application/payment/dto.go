package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/payment"
)

// CreatePaymentRequest starts a payment attempt for an order. The amount
// is taken from the order total, never from the client.
type CreatePaymentRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Gateway string    `json:"gateway" binding:"required"`
}

// GatewayNotification is the normalized webhook payload a gateway
// adapter produces after verifying the signature.
type GatewayNotification struct {
	PaymentID     uuid.UUID      `json:"payment_id" binding:"required"`
	TransactionID string         `json:"transaction_id"`
	Status        string         `json:"status" binding:"required"`
	RawResponse   map[string]any `json:"raw_response"`
}

// PaymentResponse is the public representation of a payment attempt
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	Gateway       string          `json:"gateway"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	RejectedAt    *time.Time      `json:"rejected_at,omitempty"`
	RefundedAt    *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a payment aggregate to its response form
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Gateway:       string(p.Gateway),
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		ApprovedAt:    p.ApprovedAt,
		RejectedAt:    p.RejectedAt,
		RefundedAt:    p.RefundedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}
