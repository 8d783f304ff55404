package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/payment"
	"github.com/tienda/backend/internal/domain/shared"
)

// Gateway notification statuses after adapter normalization
const (
	notificationPending  = "PENDING"
	notificationApproved = "APPROVED"
	notificationRejected = "REJECTED"
	notificationRefunded = "REFUNDED"
)

// Service handles payment attempts and gateway notifications
type Service struct {
	paymentRepo    payment.Repository
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a payment service
func NewService(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		paymentRepo:    paymentRepo,
		orderRepo:      orderRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create opens a payment attempt against a pending order owned by the user
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreatePaymentRequest) (*PaymentResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "order belongs to another user")
	}
	if o.Status != order.StatusPending {
		return nil, shared.NewDomainError("ORDER_NOT_PAYABLE",
			fmt.Sprintf("cannot pay an order in status %s", o.Status))
	}

	p, err := payment.NewPayment(o.ID, payment.Gateway(strings.ToUpper(req.Gateway)), o.Total)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	s.publishEvents(ctx, p)

	resp := ToPaymentResponse(p)
	return &resp, nil
}

// HandleNotification applies a verified gateway notification. An approval
// already recorded under the same transaction id is acknowledged without
// a second transition.
func (s *Service) HandleNotification(ctx context.Context, notification *GatewayNotification) (*PaymentResponse, error) {
	if notification.TransactionID != "" {
		existing, err := s.paymentRepo.FindByTransactionID(ctx, notification.TransactionID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.Status == payment.StatusApproved {
			s.logger.Info("duplicate gateway notification ignored",
				zap.String("transaction_id", notification.TransactionID))
			resp := ToPaymentResponse(existing)
			return &resp, nil
		}
	}

	p, err := s.paymentRepo.FindByID(ctx, notification.PaymentID)
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(notification.Status) {
	case notificationPending:
		err = p.MarkPending(notification.RawResponse)
	case notificationApproved:
		err = p.Approve(notification.TransactionID, notification.RawResponse)
	case notificationRejected:
		err = p.Reject(notification.RawResponse)
	case notificationRefunded:
		err = p.Refund(notification.RawResponse)
	default:
		return nil, shared.NewDomainError("UNKNOWN_NOTIFICATION_STATUS",
			fmt.Sprintf("unsupported gateway status %q", notification.Status))
	}
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	s.publishEvents(ctx, p)

	s.logger.Info("gateway notification applied",
		zap.String("payment_id", p.ID.String()),
		zap.String("status", string(p.Status)))

	resp := ToPaymentResponse(p)
	return &resp, nil
}

// Refund refunds an approved payment. Back-office operation.
func (s *Service) Refund(ctx context.Context, paymentID uuid.UUID, response map[string]any) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := p.Refund(response); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	s.publishEvents(ctx, p)

	resp := ToPaymentResponse(p)
	return &resp, nil
}

// GetByID returns a payment whose order belongs to the user
func (s *Service) GetByID(ctx context.Context, userID, paymentID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOrderOwnership(ctx, userID, p.OrderID); err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// ListByOrder returns every payment attempt for an order owned by the user
func (s *Service) ListByOrder(ctx context.Context, userID, orderID uuid.UUID) ([]PaymentResponse, error) {
	if err := s.checkOrderOwnership(ctx, userID, orderID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

func (s *Service) checkOrderOwnership(ctx context.Context, userID, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return shared.NewDomainError("FORBIDDEN", "order belongs to another user")
	}
	return nil
}

func (s *Service) publishEvents(ctx context.Context, p *payment.Payment) {
	if s.eventPublisher == nil {
		return
	}
	events := p.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish payment events", zap.Error(err))
	}
	p.ClearDomainEvents()
}
