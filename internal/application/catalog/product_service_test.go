package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T, sku, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, "Camiseta Basica", decimal.RequireFromString(price))
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySKU", ctx, "TSH-001").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:   "TSH-001",
			Name:  "Camiseta Basica",
			Price: decimal.RequireFromString("49900"),
		})

		require.NoError(t, err)
		assert.Equal(t, "TSH-001", resp.SKU)
		assert.True(t, resp.IsActive)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate sku", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySKU", ctx, "TSH-001").Return(true, nil)

		_, err := svc.Create(ctx, CreateProductRequest{
			SKU:   "TSH-001",
			Name:  "Camiseta Basica",
			Price: decimal.RequireFromString("49900"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		categoryID := uuid.New()
		productRepo.On("ExistsBySKU", ctx, "TSH-001").Return(false, nil)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateProductRequest{
			SKU:         "TSH-001",
			Name:        "Camiseta Basica",
			Price:       decimal.RequireFromString("49900"),
			CategoryIDs: []uuid.UUID{categoryID},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates price", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo, new(MockCategoryRepository))

		product := newTestProduct(t, "TSH-001", "49900")
		newPrice := decimal.RequireFromString("59900")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := svc.Update(ctx, product.ID, UpdateProductRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(newPrice))
	})

	t.Run("not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo, new(MockCategoryRepository))

		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, id, UpdateProductRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Customization(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	product := newTestProduct(t, "TSH-001", "49900")
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := svc.EnableCustomization(ctx, product.ID, EnableCustomizationRequest{
		BasePrice: decimal.RequireFromString("39900"),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsCustomizable)
	require.NotNil(t, resp.BasePrice)
	assert.True(t, resp.BasePrice.Equal(decimal.RequireFromString("39900")))
}

func TestProductService_AddVariant(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	product := newTestProduct(t, "TSH-001", "49900")
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := svc.AddVariant(ctx, product.ID, AddVariantRequest{
		SKU:         "TSH-001-M",
		Description: "Talla M",
	})

	require.NoError(t, err)
	require.Len(t, resp.Variants, 1)
	assert.Equal(t, "TSH-001-M", resp.Variants[0].SKU)
	assert.True(t, resp.Variants[0].EffectivePrice.Equal(product.Price))
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, new(MockCategoryRepository))

	products := []catalog.Product{*newTestProduct(t, "TSH-001", "49900"), *newTestProduct(t, "TSH-002", "59900")}

	productRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(products, nil)
	productRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	responses, total, err := svc.List(ctx, ProductListFilter{})

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, responses, 2)
}

func TestProductService_AssignCategory(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := NewProductService(productRepo, categoryRepo)

	product := newTestProduct(t, "TSH-001", "49900")
	category, err := catalog.NewCategory("Camisetas", "camisetas")
	require.NoError(t, err)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	productRepo.On("AssignCategory", ctx, product.ID, category.ID).Return(nil)

	require.NoError(t, svc.AssignCategory(ctx, product.ID, category.ID))
	productRepo.AssertExpectations(t)
}
