package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/shared"
)

// Gateway identifies the payment processor behind a payment record.
// One polymorphic record covers every gateway; gateway-specific data
// lives in the raw response.
type Gateway string

const (
	GatewayWompi     Gateway = "WOMPI"
	GatewayPayPal    Gateway = "PAYPAL"
	GatewayPSE       Gateway = "PSE"
	GatewayNequi     Gateway = "NEQUI"
	GatewayDaviplata Gateway = "DAVIPLATA"
	GatewayCash      Gateway = "CASH"
)

// IsValid checks if the gateway is known
func (g Gateway) IsValid() bool {
	switch g {
	case GatewayWompi, GatewayPayPal, GatewayPSE, GatewayNequi, GatewayDaviplata, GatewayCash:
		return true
	}
	return false
}

// Status represents the lifecycle state of a payment
type Status string

const (
	StatusCreated  Status = "created"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRefunded Status = "refunded"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusCreated:
		return target == StatusPending || target == StatusApproved || target == StatusRejected
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusRefunded
	case StatusRejected, StatusRefunded:
		return false // Terminal states
	}
	return false
}

// Payment is one attempt to collect money for an order through a
// gateway. An order may accumulate several payment records (retries,
// partial refunds handled upstream).
type Payment struct {
	shared.BaseAggregateRoot
	OrderID       uuid.UUID
	Gateway       Gateway
	TransactionID string
	Amount        decimal.Decimal
	Status        Status

	// Raw gateway response, stored verbatim for reconciliation
	GatewayResponse map[string]any

	ApprovedAt *time.Time
	RejectedAt *time.Time
	RefundedAt *time.Time
}

// NewPayment creates a payment record in CREATED state
func NewPayment(orderID uuid.UUID, gateway Gateway, amount decimal.Decimal) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	if !gateway.IsValid() {
		return nil, shared.NewDomainError("INVALID_GATEWAY", "Unknown payment gateway")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Gateway:           gateway,
		Amount:            amount,
		Status:            StatusCreated,
	}

	p.AddDomainEvent(NewPaymentCreatedEvent(p))

	return p, nil
}

// SetTransactionID records the gateway's transaction identifier
func (p *Payment) SetTransactionID(transactionID string) error {
	if transactionID == "" || len(transactionID) > 100 {
		return shared.NewDomainError("INVALID_TRANSACTION_ID", "Transaction ID must be 1 to 100 characters")
	}
	p.TransactionID = transactionID
	p.touch()
	return nil
}

// MarkPending marks the payment as awaiting gateway confirmation
func (p *Payment) MarkPending(response map[string]any) error {
	if err := p.transition(StatusPending); err != nil {
		return err
	}

	p.mergeResponse(response)
	return nil
}

// Approve marks the payment as approved by the gateway
func (p *Payment) Approve(transactionID string, response map[string]any) error {
	if err := p.transition(StatusApproved); err != nil {
		return err
	}

	if transactionID != "" {
		p.TransactionID = transactionID
	}
	p.mergeResponse(response)

	now := time.Now()
	p.ApprovedAt = &now

	p.AddDomainEvent(NewPaymentApprovedEvent(p))

	return nil
}

// Reject marks the payment as rejected by the gateway
func (p *Payment) Reject(response map[string]any) error {
	if err := p.transition(StatusRejected); err != nil {
		return err
	}

	p.mergeResponse(response)

	now := time.Now()
	p.RejectedAt = &now

	p.AddDomainEvent(NewPaymentRejectedEvent(p))

	return nil
}

// Refund marks an approved payment as refunded
func (p *Payment) Refund(response map[string]any) error {
	if err := p.transition(StatusRefunded); err != nil {
		return err
	}

	p.mergeResponse(response)

	now := time.Now()
	p.RefundedAt = &now

	p.AddDomainEvent(NewPaymentRefundedEvent(p))

	return nil
}

// IsFinal returns true if the payment reached a terminal state
func (p *Payment) IsFinal() bool {
	return p.Status == StatusRejected || p.Status == StatusRefunded
}

func (p *Payment) transition(target Status) error {
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition payment from %s to %s", p.Status, target))
	}
	p.Status = target
	p.touch()
	return nil
}

func (p *Payment) mergeResponse(response map[string]any) {
	if response == nil {
		return
	}
	if p.GatewayResponse == nil {
		p.GatewayResponse = make(map[string]any, len(response))
	}
	for k, v := range response {
		p.GatewayResponse[k] = v
	}
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
