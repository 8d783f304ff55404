package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart with its items
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.ShoppingCart, error) {
	var c cart.ShoppingCart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds carts matching the filter
func (r *GormCartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cart.ShoppingCart, error) {
	var carts []cart.ShoppingCart
	query := applyFilter(r.db.WithContext(ctx).Model(&cart.ShoppingCart{}), filter, CommonSortFields, "created_at")
	if err := query.Preload("Items").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// FindByUser returns the cart owned by a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.ShoppingCart, error) {
	var c cart.ShoppingCart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindBySession returns the cart of an anonymous session
func (r *GormCartRepository) FindBySession(ctx context.Context, sessionID string) (*cart.ShoppingCart, error) {
	var c cart.ShoppingCart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ?", sessionID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists a cart and its items. Items removed from the aggregate
// are deleted so the row set mirrors the in-memory state.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(c.Items))
		for i := range c.Items {
			keep = append(keep, c.Items[i].ID)
		}

		query := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		for i := range c.Items {
			if err := tx.Save(&c.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a cart and, via cascade, its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cart.ShoppingCart{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts carts matching the filter
func (r *GormCartRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&cart.ShoppingCart{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
