package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cart.ShoppingCart, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindBySession(ctx context.Context, sessionID string) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
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

func newTestService() (*Service, *MockCartRepository, *MockProductRepository, *MockDesignRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	designRepo := new(MockDesignRepository)
	return NewService(cartRepo, productRepo, designRepo), cartRepo, productRepo, designRepo
}

func newActiveProduct(t *testing.T, sku string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Camiseta Basica", decimal.NewFromInt(price))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func newUserCart(t *testing.T, userID uuid.UUID) *cart.ShoppingCart {
	t.Helper()
	c, err := cart.NewUserCart(userID)
	require.NoError(t, err)
	return c
}

func TestCartService_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns existing cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		existing := newUserCart(t, userID)
		cartRepo.On("FindByUser", ctx, userID).Return(existing, nil)

		resp, err := svc.GetOrCreate(ctx, UserOwner(userID))

		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		cartRepo.AssertNotCalled(t, "Save")
	})

	t.Run("creates cart on first use", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		cartRepo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.ShoppingCart")).Return(nil)

		resp, err := svc.GetOrCreate(ctx, UserOwner(userID))

		require.NoError(t, err)
		require.NotNil(t, resp.UserID)
		assert.Equal(t, userID, *resp.UserID)
		assert.Empty(t, resp.Items)
	})

	t.Run("creates session cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		cartRepo.On("FindBySession", ctx, "sess-123").Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.ShoppingCart")).Return(nil)

		resp, err := svc.GetOrCreate(ctx, SessionOwner("sess-123"))

		require.NoError(t, err)
		assert.Equal(t, "sess-123", resp.SessionID)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds product and captures price", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		shoppingCart := newUserCart(t, userID)

		cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("Save", ctx, shoppingCart).Return(nil)

		resp, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{
			ProductID: &product.ID,
			Quantity:  2,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(45000)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(90000)))
	})

	t.Run("design line uses base product price", func(t *testing.T) {
		svc, cartRepo, _, designRepo := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		require.NoError(t, product.EnableCustomization(decimal.NewFromInt(38000)))
		customDesign, err := design.NewCustomDesign(userID, product, "https://cdn.tienda.co/d.png", map[string]any{})
		require.NoError(t, err)

		shoppingCart := newUserCart(t, userID)
		cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
		designRepo.On("FindByID", ctx, customDesign.ID).Return(customDesign, nil)
		cartRepo.On("Save", ctx, shoppingCart).Return(nil)

		resp, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{
			CustomDesignID: &customDesign.ID,
			Quantity:       1,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(38000)))
	})

	t.Run("rejects line with both product and design", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		productID := uuid.New()
		designID := uuid.New()
		_, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{
			ProductID:      &productID,
			CustomDesignID: &designID,
			Quantity:       1,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CART_LINE", domainErr.Code)
	})

	t.Run("rejects line with neither product nor design", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{Quantity: 1})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CART_LINE", domainErr.Code)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		product.Deactivate()
		shoppingCart := newUserCart(t, userID)

		cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{
			ProductID: &product.ID,
			Quantity:  1,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_INACTIVE", domainErr.Code)
	})

	t.Run("same product bumps quantity keeping captured price", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		shoppingCart := newUserCart(t, userID)
		_, err := shoppingCart.AddProduct(product, 1)
		require.NoError(t, err)

		// Catalog price changes after the first add
		require.NoError(t, product.SetPrice(decimal.NewFromInt(50000)))

		cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("Save", ctx, shoppingCart).Return(nil)

		resp, err := svc.AddItem(ctx, UserOwner(userID), AddItemRequest{
			ProductID: &product.ID,
			Quantity:  1,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(45000)))
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, cartRepo, _, _ := newTestService()

	product := newActiveProduct(t, "TSH-001", 45000)
	shoppingCart := newUserCart(t, userID)
	item, err := shoppingCart.AddProduct(product, 1)
	require.NoError(t, err)

	cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
	cartRepo.On("Save", ctx, shoppingCart).Return(nil)

	resp, err := svc.UpdateQuantity(ctx, UserOwner(userID), item.ID, UpdateQuantityRequest{Quantity: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Items[0].Quantity)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, cartRepo, _, _ := newTestService()

	product := newActiveProduct(t, "TSH-001", 45000)
	shoppingCart := newUserCart(t, userID)
	item, err := shoppingCart.AddProduct(product, 1)
	require.NoError(t, err)

	cartRepo.On("FindByUser", ctx, userID).Return(shoppingCart, nil)
	cartRepo.On("Save", ctx, shoppingCart).Return(nil)

	resp, err := svc.RemoveItem(ctx, UserOwner(userID), item.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	_, err = shoppingCart.AddProduct(product, 3)
	require.NoError(t, err)

	resp, err = svc.Clear(ctx, UserOwner(userID))
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestCartService_MergeSessionCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("merges session lines into user cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		sessionCart, err := cart.NewSessionCart("sess-123")
		require.NoError(t, err)
		_, err = sessionCart.AddProduct(product, 2)
		require.NoError(t, err)

		userCart := newUserCart(t, userID)
		_, err = userCart.AddProduct(product, 1)
		require.NoError(t, err)

		cartRepo.On("FindBySession", ctx, "sess-123").Return(sessionCart, nil)
		cartRepo.On("FindByUser", ctx, userID).Return(userCart, nil)
		cartRepo.On("Save", ctx, userCart).Return(nil)
		cartRepo.On("Delete", ctx, sessionCart.ID).Return(nil)

		resp, err := svc.MergeSessionCart(ctx, userID, "sess-123")

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].Quantity)
	})

	t.Run("attaches session cart when user has none", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		product := newActiveProduct(t, "TSH-001", 45000)
		sessionCart, err := cart.NewSessionCart("sess-456")
		require.NoError(t, err)
		_, err = sessionCart.AddProduct(product, 1)
		require.NoError(t, err)

		cartRepo.On("FindBySession", ctx, "sess-456").Return(sessionCart, nil)
		cartRepo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, sessionCart).Return(nil)

		resp, err := svc.MergeSessionCart(ctx, userID, "sess-456")

		require.NoError(t, err)
		require.NotNil(t, resp.UserID)
		assert.Equal(t, userID, *resp.UserID)
	})

	t.Run("no session cart falls back to user cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestService()

		userCart := newUserCart(t, userID)
		cartRepo.On("FindBySession", ctx, "sess-789").Return(nil, shared.ErrNotFound)
		cartRepo.On("FindByUser", ctx, userID).Return(userCart, nil)

		resp, err := svc.MergeSessionCart(ctx, userID, "sess-789")

		require.NoError(t, err)
		assert.Equal(t, userCart.ID, resp.ID)
	})
}
