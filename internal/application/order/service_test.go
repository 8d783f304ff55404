package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[order.Order], error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextOrderSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AssignCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	args := m.Called(ctx, productID, categoryID)
	return args.Error(0)
}

func (m *MockProductRepository) UnassignCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	args := m.Called(ctx, productID, categoryID)
	return args.Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockDesignRepository is a mock implementation of design.Repository
type MockDesignRepository struct {
	mock.Mock
}

func (m *MockDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*design.CustomDesign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]design.CustomDesign, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]design.CustomDesign, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) FindByBaseProduct(ctx context.Context, productID uuid.UUID) ([]design.CustomDesign, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) Save(ctx context.Context, d *design.CustomDesign) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*Service, *MockOrderRepository, *MockProductRepository, *MockDesignRepository) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	designRepo := new(MockDesignRepository)
	return NewService(orderRepo, productRepo, designRepo, nil), orderRepo, productRepo, designRepo
}

func newActiveProduct(t *testing.T, sku string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Camiseta Basica", decimal.NewFromInt(price))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func newPendingOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-20260830-0001", userID, uuid.New(), uuid.New())
	require.NoError(t, err)
	product := newActiveProduct(t, "TSH-001", 45000)
	_, err = o.AddItem(product, nil, 2)
	require.NoError(t, err)
	require.NoError(t, o.SetAmounts(o.ItemsSubtotal(), decimal.NewFromInt(17100), decimal.NewFromInt(9000), decimal.Zero))
	o.ClearDomainEvents()
	return o
}

func baseCreateRequest(items ...OrderItemInput) *CreateOrderRequest {
	return &CreateOrderRequest{
		ShippingAddressID: uuid.New(),
		BillingAddressID:  uuid.New(),
		Items:             items,
		PaymentMethod:     "nequi",
		ShippingMethod:    "standard",
		TaxAmount:         decimal.NewFromInt(17100),
		ShippingCost:      decimal.NewFromInt(9000),
		DiscountAmount:    decimal.Zero,
	}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates order with product and variant lines", func(t *testing.T) {
		svc, orderRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		override := decimal.NewFromInt(52000)
		variant, err := product.AddVariant("TSH-001-XL", "Talla XL", &override)
		require.NoError(t, err)

		otherProduct := newActiveProduct(t, "MUG-001", 28000)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("FindByID", ctx, otherProduct.ID).Return(otherProduct, nil)
		orderRepo.On("NextOrderSequence", ctx).Return(int64(42), nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		req := baseCreateRequest(
			OrderItemInput{ProductID: &product.ID, VariantID: &variant.ID, Quantity: 1},
			OrderItemInput{ProductID: &otherProduct.ID, Quantity: 2},
		)

		resp, err := svc.Create(ctx, userID, req)

		require.NoError(t, err)
		expectedNumber := fmt.Sprintf("ORD-%s-0042", time.Now().UTC().Format("20060102"))
		assert.Equal(t, expectedNumber, resp.OrderNumber)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "52000", resp.Items[0].UnitPrice.String())
		assert.Equal(t, "Talla XL", resp.Items[0].VariantDescription)
		// 52000 + 2*28000 = 108000; total adds tax and shipping
		assert.Equal(t, "108000", resp.Subtotal.String())
		assert.Equal(t, "134100", resp.Total.String())
		orderRepo.AssertExpectations(t)
	})

	t.Run("creates order with a custom design line", func(t *testing.T) {
		svc, orderRepo, _, designRepo := newTestService()

		base := newActiveProduct(t, "TSH-001", 45000)
		require.NoError(t, base.EnableCustomization(decimal.NewFromInt(38000)))
		d, err := design.NewCustomDesign(userID, base, "https://cdn.tienda.co/designs/leon.png", map[string]any{"escala": 1.2})
		require.NoError(t, err)

		designRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		orderRepo.On("NextOrderSequence", ctx).Return(int64(7), nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		req := baseCreateRequest(OrderItemInput{CustomDesignID: &d.ID, Quantity: 1})

		resp, err := svc.Create(ctx, userID, req)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "38000", resp.Items[0].UnitPrice.String())
		require.NotNil(t, resp.Items[0].CustomDesignID)
	})

	t.Run("rejects design owned by another user", func(t *testing.T) {
		svc, orderRepo, _, designRepo := newTestService()

		base := newActiveProduct(t, "TSH-001", 45000)
		require.NoError(t, base.EnableCustomization(decimal.NewFromInt(38000)))
		d, err := design.NewCustomDesign(uuid.New(), base, "https://cdn.tienda.co/designs/leon.png", map[string]any{})
		require.NoError(t, err)

		designRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		orderRepo.On("NextOrderSequence", ctx).Return(int64(8), nil)

		_, err = svc.Create(ctx, userID, baseCreateRequest(OrderItemInput{CustomDesignID: &d.ID, Quantity: 1}))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a line naming both product and design", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		productID := uuid.New()
		designID := uuid.New()
		orderRepo.On("NextOrderSequence", ctx).Return(int64(9), nil)

		_, err := svc.Create(ctx, userID, baseCreateRequest(
			OrderItemInput{ProductID: &productID, CustomDesignID: &designID, Quantity: 1},
		))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ORDER_LINE", domainErr.Code)
	})

	t.Run("rejects variant from a different product", func(t *testing.T) {
		svc, orderRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		strayVariantID := uuid.New()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		orderRepo.On("NextOrderSequence", ctx).Return(int64(10), nil)

		_, err := svc.Create(ctx, userID, baseCreateRequest(
			OrderItemInput{ProductID: &product.ID, VariantID: &strayVariantID, Quantity: 1},
		))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_VARIANT", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		svc, orderRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		orderRepo.On("NextOrderSequence", ctx).Return(int64(11), nil)

		req := baseCreateRequest(OrderItemInput{ProductID: &product.ID, Quantity: 1})
		req.PaymentMethod = "bitcoin"

		_, err := svc.Create(ctx, userID, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	})
}

func TestOrderService_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns own order by id", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := svc.GetByID(ctx, userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, resp.OrderNumber)
		assert.Equal(t, "99000", resp.Subtotal.String())
	})

	t.Run("hides another user's order", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := svc.GetByID(ctx, userID, o.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("looks up by order number", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		orderRepo.On("FindByOrderNumber", ctx, o.OrderNumber).Return(o, nil)

		resp, err := svc.GetByOrderNumber(ctx, userID, o.OrderNumber)

		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, orderRepo, _, _ := newTestService()

	o := newPendingOrder(t, userID)
	paginated := shared.NewPaginated([]order.Order{*o}, 1, 1, 20)

	orderRepo.On("FindByUser", ctx, userID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["status"] == "pending"
	})).Return(paginated, nil)

	resp, err := svc.List(ctx, userID, OrderListFilter{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, o.OrderNumber, resp.Items[0].OrderNumber)
}

func TestOrderService_Transitions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("pay stamps paid_at and records history", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		resp, err := svc.Pay(ctx, userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		require.NotNil(t, resp.PaidAt)
		require.Len(t, resp.StatusHistory, 1)
		assert.Equal(t, "pending", resp.StatusHistory[0].OldStatus)
		assert.Equal(t, "paid", resp.StatusHistory[0].NewStatus)
		assert.Equal(t, userID.String(), resp.StatusHistory[0].ChangedBy)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		resp, err := svc.Cancel(ctx, userID, o.ID, "cambio de opinion")

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		require.Len(t, resp.StatusHistory, 1)
		assert.Equal(t, "cambio de opinion", resp.StatusHistory[0].Notes)
	})

	t.Run("full fulfillment path", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		require.NoError(t, o.MarkPaid(userID.String()))
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		resp, err := svc.StartProcessing(ctx, "ops@tienda.co", o.ID)
		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)

		resp, err = svc.Ship(ctx, "ops@tienda.co", o.ID)
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)

		resp, err = svc.Deliver(ctx, "ops@tienda.co", o.ID)
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		require.NotNil(t, resp.DeliveredAt)
	})

	t.Run("rejects delivering a pending order", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := svc.Deliver(ctx, "ops@tienda.co", o.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("forbids paying another user's order", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := svc.Pay(ctx, userID, o.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("refund after delivery", func(t *testing.T) {
		svc, orderRepo, _, _ := newTestService()

		o := newPendingOrder(t, userID)
		require.NoError(t, o.MarkPaid(userID.String()))
		require.NoError(t, o.StartProcessing("ops@tienda.co"))
		require.NoError(t, o.Ship("ops@tienda.co"))
		require.NoError(t, o.Deliver("ops@tienda.co"))
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		resp, err := svc.Refund(ctx, "soporte@tienda.co", o.ID, "producto defectuoso")

		require.NoError(t, err)
		assert.Equal(t, "refunded", resp.Status)
	})
}
