package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates review for existing product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo)

		product := newTestProduct(t, "TSH-001", "49900")
		userID := uuid.New()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		reviewRepo.On("Save", ctx, mock.AnythingOfType("*catalog.ProductReview")).Return(nil)

		resp, err := svc.Create(ctx, product.ID, userID, CreateReviewRequest{
			Rating:  5,
			Comment: "Excelente calidad",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
		assert.Equal(t, userID, resp.UserID)
	})

	t.Run("rejects out of range rating", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo)

		product := newTestProduct(t, "TSH-001", "49900")
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.Create(ctx, product.ID, uuid.New(), CreateReviewRequest{Rating: 6})

		assert.Error(t, err)
		reviewRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects review for unknown product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo)

		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, productID, uuid.New(), CreateReviewRequest{Rating: 4})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReviewService_ListByProduct(t *testing.T) {
	ctx := context.Background()

	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	product := newTestProduct(t, "TSH-001", "49900")
	review, err := catalog.NewProductReview(product.ID, uuid.New(), 4, "Buena")
	require.NoError(t, err)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	reviewRepo.On("FindByProduct", ctx, product.ID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at"
	})).Return([]catalog.ProductReview{*review}, nil)
	reviewRepo.On("AverageRating", ctx, product.ID).Return(4.0, nil)

	resp, err := svc.ListByProduct(ctx, product.ID, shared.Filter{})

	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 1)
	assert.Equal(t, 4.0, resp.AverageRating)
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes own review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo)

		userID := uuid.New()
		review, err := catalog.NewProductReview(uuid.New(), userID, 3, "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, review.ID).Return(review, nil)
		reviewRepo.On("Delete", ctx, review.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, review.ID, userID))
	})

	t.Run("refuses to delete another user's review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo)

		review, err := catalog.NewProductReview(uuid.New(), uuid.New(), 3, "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, review.ID).Return(review, nil)

		err = svc.Delete(ctx, review.ID, uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}
