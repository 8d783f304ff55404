package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/payment"
	"github.com/tienda/backend/internal/domain/shared"
)

// payment gateway actor recorded in the order status history
const paymentGatewayActor = "payment-gateway"

// PaymentApprovedHandler marks orders as paid when a payment gateway
// approves the corresponding payment.
type PaymentApprovedHandler struct {
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentApprovedHandler creates the handler
func NewPaymentApprovedHandler(orderRepo order.Repository, eventPublisher shared.EventPublisher, logger *zap.Logger) *PaymentApprovedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentApprovedHandler{
		orderRepo:      orderRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *PaymentApprovedHandler) EventTypes() []string {
	return []string{payment.EventTypePaymentApproved}
}

// Handle transitions the paid order. An order already past PENDING is
// left untouched so replayed events stay harmless.
func (h *PaymentApprovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approved, ok := event.(*payment.PaymentApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	o, err := h.orderRepo.FindByID(ctx, approved.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", approved.OrderID, err)
	}

	if o.Status != order.StatusPending {
		h.logger.Info("skipping payment approval for non-pending order",
			zap.String("order_id", o.ID.String()),
			zap.String("status", string(o.Status)))
		return nil
	}

	if err := o.MarkPaid(paymentGatewayActor); err != nil {
		return err
	}
	if err := h.orderRepo.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to save order %s: %w", o.ID, err)
	}

	if h.eventPublisher != nil {
		_ = h.eventPublisher.Publish(ctx, o.GetDomainEvents()...)
		o.ClearDomainEvents()
	}

	h.logger.Info("order marked paid",
		zap.String("order_id", o.ID.String()),
		zap.String("transaction_id", approved.TransactionID))
	return nil
}
