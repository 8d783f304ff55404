package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDesignRepository implements design.Repository using GORM
type GormDesignRepository struct {
	db *gorm.DB
}

// NewGormDesignRepository creates a new GormDesignRepository
func NewGormDesignRepository(db *gorm.DB) *GormDesignRepository {
	return &GormDesignRepository{db: db}
}

// FindByID finds a design with its base product
func (r *GormDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*design.CustomDesign, error) {
	var d design.CustomDesign
	if err := r.db.WithContext(ctx).
		Preload("BaseProduct").
		First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds designs matching the filter
func (r *GormDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]design.CustomDesign, error) {
	var designs []design.CustomDesign
	query := r.filtered(r.db.WithContext(ctx).Model(&design.CustomDesign{}), filter)
	query = applyFilter(query, filter, DesignSortFields, "created_at")
	if err := query.Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// FindByUser returns a user's designs
func (r *GormDesignRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]design.CustomDesign, error) {
	var designs []design.CustomDesign
	query := r.db.WithContext(ctx).Model(&design.CustomDesign{}).
		Where("user_id = ?", userID)
	query = applyFilter(query, filter, DesignSortFields, "created_at")
	if err := query.Preload("BaseProduct").Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// FindByBaseProduct returns the designs derived from a product
func (r *GormDesignRepository) FindByBaseProduct(ctx context.Context, productID uuid.UUID) ([]design.CustomDesign, error) {
	var designs []design.CustomDesign
	if err := r.db.WithContext(ctx).
		Where("base_product_id = ?", productID).
		Order("created_at DESC").
		Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// Save persists a design
func (r *GormDesignRepository) Save(ctx context.Context, d *design.CustomDesign) error {
	return r.db.WithContext(ctx).Omit("BaseProduct").Save(d).Error
}

// Delete removes a design by ID
func (r *GormDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&design.CustomDesign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts designs matching the filter
func (r *GormDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.filtered(r.db.WithContext(ctx).Model(&design.CustomDesign{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDesignRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if productID, ok := filter.Filters["base_product_id"]; ok {
		query = query.Where("base_product_id = ?", productID)
	}
	return query
}
