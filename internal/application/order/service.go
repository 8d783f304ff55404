package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// Service handles checkout and order lifecycle operations
type Service struct {
	orderRepo      order.Repository
	productRepo    catalog.ProductRepository
	designRepo     design.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates an order service
func NewService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	designRepo design.Repository,
	eventPublisher shared.EventPublisher,
) *Service {
	return &Service{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		designRepo:     designRepo,
		eventPublisher: eventPublisher,
	}
}

// Create places an order from explicit line items. Prices are snapshotted
// from the current catalog at the moment of checkout.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	seq, err := s.orderRepo.NextOrderSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}
	orderNumber := fmt.Sprintf("ORD-%s-%04d", time.Now().UTC().Format("20060102"), seq)

	o, err := order.NewOrder(orderNumber, userID, req.ShippingAddressID, req.BillingAddressID)
	if err != nil {
		return nil, err
	}

	for i := range req.Items {
		if err := s.addLine(ctx, o, userID, &req.Items[i]); err != nil {
			return nil, err
		}
	}

	if err := o.SetAmounts(o.ItemsSubtotal(), req.TaxAmount, req.ShippingCost, req.DiscountAmount); err != nil {
		return nil, err
	}
	if err := o.SetPaymentMethod(order.PaymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	if err := o.SetShippingMethod(order.ShippingMethod(req.ShippingMethod)); err != nil {
		return nil, err
	}
	o.SetClientInfo(req.IPAddress, req.UserAgent)
	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) addLine(ctx context.Context, o *order.Order, userID uuid.UUID, input *OrderItemInput) error {
	if (input.ProductID == nil) == (input.CustomDesignID == nil) {
		return shared.NewDomainError("INVALID_ORDER_LINE", "order line needs exactly one of product_id or custom_design_id")
	}

	if input.CustomDesignID != nil {
		d, err := s.designRepo.FindByID(ctx, *input.CustomDesignID)
		if err != nil {
			return err
		}
		if d.UserID != userID {
			return shared.NewDomainError("FORBIDDEN", "custom design belongs to another user")
		}
		if d.BaseProduct == nil {
			base, err := s.productRepo.FindByID(ctx, d.BaseProductID)
			if err != nil {
				return err
			}
			d.BaseProduct = base
		}
		_, err = o.AddDesignItem(d, input.Quantity)
		return err
	}

	product, err := s.productRepo.FindByID(ctx, *input.ProductID)
	if err != nil {
		return err
	}
	var variant *catalog.ProductVariant
	if input.VariantID != nil {
		for i := range product.Variants {
			if product.Variants[i].ID == *input.VariantID {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			return shared.NewDomainError("UNKNOWN_VARIANT", "variant does not belong to this product")
		}
	}
	_, err = o.AddItem(product, variant, input.Quantity)
	return err
}

// GetByID returns an order owned by the given user
func (s *Service) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByOrderNumber looks an order up by its human-readable number
func (s *Service) GetByOrderNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "order belongs to another user")
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns the user's orders, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*OrderListResponse, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	paginated, err := s.orderRepo.FindByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	resp := ToOrderListResponse(paginated)
	return &resp, nil
}

// Pay marks an order as paid on behalf of the acting user
func (s *Service) Pay(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.ownedTransition(ctx, userID, orderID, func(o *order.Order, actor string) error {
		return o.MarkPaid(actor)
	})
}

// Cancel cancels an order that has not shipped yet
func (s *Service) Cancel(ctx context.Context, userID, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.ownedTransition(ctx, userID, orderID, func(o *order.Order, actor string) error {
		return o.Cancel(actor, reason)
	})
}

// StartProcessing moves a paid order into fulfillment. Back-office operation.
func (s *Service) StartProcessing(ctx context.Context, actor string, orderID uuid.UUID) (*OrderResponse, error) {
	return s.adminTransition(ctx, orderID, func(o *order.Order) error {
		return o.StartProcessing(actor)
	})
}

// Ship marks an order as shipped. Back-office operation.
func (s *Service) Ship(ctx context.Context, actor string, orderID uuid.UUID) (*OrderResponse, error) {
	return s.adminTransition(ctx, orderID, func(o *order.Order) error {
		return o.Ship(actor)
	})
}

// Deliver marks a shipped order as delivered. Back-office operation.
func (s *Service) Deliver(ctx context.Context, actor string, orderID uuid.UUID) (*OrderResponse, error) {
	return s.adminTransition(ctx, orderID, func(o *order.Order) error {
		return o.Deliver(actor)
	})
}

// Refund refunds a paid or delivered order. Back-office operation.
func (s *Service) Refund(ctx context.Context, actor string, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.adminTransition(ctx, orderID, func(o *order.Order) error {
		return o.Refund(actor, reason)
	})
}

func (s *Service) ownedTransition(ctx context.Context, userID, orderID uuid.UUID, fn func(*order.Order, string) error) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(o, userID.String()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.publishEvents(ctx, o)
	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) adminTransition(ctx context.Context, orderID uuid.UUID, fn func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.publishEvents(ctx, o)
	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) findOwned(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "order belongs to another user")
	}
	return o, nil
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	o.ClearDomainEvents()
}
