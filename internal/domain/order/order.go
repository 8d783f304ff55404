package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// PaymentMethod identifies how the shopper intends to pay
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodNequi        PaymentMethod = "nequi"
	PaymentMethodDaviplata    PaymentMethod = "daviplata"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer,
		PaymentMethodCash, PaymentMethodNequi, PaymentMethodDaviplata:
		return true
	}
	return false
}

// ShippingMethod identifies how the order is delivered
type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
	ShippingMethodPickup   ShippingMethod = "pickup"
)

// IsValid checks if the shipping method is known
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingMethodStandard, ShippingMethodExpress, ShippingMethodPickup:
		return true
	}
	return false
}

// Order is the aggregate root of the purchase lifecycle. Status moves
// through an explicit transition table; every transition appends a
// history row and stamps its lifecycle timestamp exactly once.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string
	UserID            uuid.UUID
	ShippingAddressID uuid.UUID
	BillingAddressID  uuid.UUID
	Status            Status

	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	PaymentMethod  PaymentMethod
	ShippingMethod ShippingMethod

	PaidAt      *time.Time
	CancelledAt *time.Time
	DeliveredAt *time.Time

	IPAddress     string
	UserAgent     string
	Notes         string
	InternalNotes string

	Items         []OrderItem
	StatusHistory []StatusHistory
}

// StatusHistory records one status transition of an order
type StatusHistory struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	OldStatus Status
	NewStatus Status
	ChangedBy string
	Notes     string
}

// NewOrder creates a pending order for a user
func NewOrder(orderNumber string, userID, shippingAddressID, billingAddressID uuid.UUID) (*Order, error) {
	if orderNumber == "" || len(orderNumber) > 20 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must be 1 to 20 characters")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if shippingAddressID == uuid.Nil || billingAddressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping and billing addresses are required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
		Status:            StatusPending,
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		ShippingCost:      decimal.Zero,
		DiscountAmount:    decimal.Zero,
		Total:             decimal.Zero,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line for a catalog product. The unit price defaults to
// the variant's effective price, and name snapshots are taken here.
func (o *Order) AddItem(product *catalog.Product, variant *catalog.ProductVariant, quantity int) (*OrderItem, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("ORDER_NOT_EDITABLE", "Items can only be added to a pending order")
	}

	item, err := newOrderItem(o.ID, product, variant, quantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.touch()

	return item, nil
}

// AddDesignItem adds a line for a custom design
func (o *Order) AddDesignItem(customDesign *design.CustomDesign, quantity int) (*OrderItem, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("ORDER_NOT_EDITABLE", "Items can only be added to a pending order")
	}

	item, err := newDesignOrderItem(o.ID, customDesign, quantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.touch()

	return item, nil
}

// ItemsSubtotal sums the line subtotals
func (o *Order) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	return total
}

// SetAmounts sets the financial totals. Total is computed as
// subtotal + tax + shipping - discount.
func (o *Order) SetAmounts(subtotal, tax, shipping, discount decimal.Decimal) error {
	for _, amount := range []decimal.Decimal{subtotal, tax, shipping, discount} {
		if amount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
		}
	}

	o.Subtotal = subtotal
	o.TaxAmount = tax
	o.ShippingCost = shipping
	o.DiscountAmount = discount
	o.Total = subtotal.Add(tax).Add(shipping).Sub(discount)
	o.touch()

	return nil
}

// SetPaymentMethod sets the intended payment method
func (o *Order) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	o.PaymentMethod = method
	o.touch()
	return nil
}

// SetShippingMethod sets the shipping method
func (o *Order) SetShippingMethod(method ShippingMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_SHIPPING_METHOD", "Unknown shipping method")
	}
	o.ShippingMethod = method
	o.touch()
	return nil
}

// SetClientInfo records the requesting client's metadata
func (o *Order) SetClientInfo(ipAddress, userAgent string) {
	o.IPAddress = ipAddress
	o.UserAgent = userAgent
	o.touch()
}

// SetNotes sets the customer-visible notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.touch()
}

// SetInternalNotes sets staff-only notes
func (o *Order) SetInternalNotes(notes string) {
	o.InternalNotes = notes
	o.touch()
}

// MarkPaid transitions the order to PAID. The payment timestamp is
// stamped on the first transition only.
func (o *Order) MarkPaid(actor string) error {
	if err := o.transition(StatusPaid, actor, ""); err != nil {
		return err
	}

	if o.PaidAt == nil {
		now := time.Now()
		o.PaidAt = &now
	}

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// StartProcessing transitions the order to PROCESSING
func (o *Order) StartProcessing(actor string) error {
	if err := o.transition(StatusProcessing, actor, ""); err != nil {
		return err
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, StatusPaid, StatusProcessing))

	return nil
}

// Ship transitions the order to SHIPPED
func (o *Order) Ship(actor string) error {
	if err := o.transition(StatusShipped, actor, ""); err != nil {
		return err
	}

	o.AddDomainEvent(NewOrderShippedEvent(o))

	return nil
}

// Deliver transitions the order to DELIVERED and stamps the delivery
// timestamp once
func (o *Order) Deliver(actor string) error {
	if err := o.transition(StatusDelivered, actor, ""); err != nil {
		return err
	}

	if o.DeliveredAt == nil {
		now := time.Now()
		o.DeliveredAt = &now
	}

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// Cancel transitions the order to CANCELLED and stamps the cancellation
// timestamp once
func (o *Order) Cancel(actor, reason string) error {
	if err := o.transition(StatusCancelled, actor, reason); err != nil {
		return err
	}

	if o.CancelledAt == nil {
		now := time.Now()
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// Refund transitions the order to REFUNDED
func (o *Order) Refund(actor, reason string) error {
	if err := o.transition(StatusRefunded, actor, reason); err != nil {
		return err
	}

	o.AddDomainEvent(NewOrderRefundedEvent(o, reason))

	return nil
}

// transition applies the status change and appends the history row
func (o *Order) transition(target Status, actor, notes string) error {
	if actor == "" {
		return shared.NewDomainError("INVALID_ACTOR", "Transition actor is required")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	old := o.Status
	o.Status = target
	o.StatusHistory = append(o.StatusHistory, StatusHistory{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		OldStatus:  old,
		NewStatus:  target,
		ChangedBy:  actor,
		Notes:      notes,
	})
	o.touch()

	return nil
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
