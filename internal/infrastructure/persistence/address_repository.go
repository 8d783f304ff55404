package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/address"
	"github.com/tienda/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements address.Repository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*address.Address, error) {
	var addr address.Address
	if err := r.db.WithContext(ctx).First(&addr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

// FindAll finds addresses matching the filter
func (r *GormAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]address.Address, error) {
	var addrs []address.Address
	query := r.db.WithContext(ctx).Model(&address.Address{})
	if code, ok := filter.Filters["municipality_code"]; ok {
		query = query.Where("municipality_code = ?", code)
	}
	query = applyFilter(query, filter, AddressSortFields, "created_at")
	if err := query.Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// FindByUser returns a user's addresses, primary first
func (r *GormAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]address.Address, error) {
	var addrs []address.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at DESC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// FindPrimaryByUser returns the user's primary address
func (r *GormAddressRepository) FindPrimaryByUser(ctx context.Context, userID uuid.UUID) (*address.Address, error) {
	var addr address.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_primary = ?", userID, true).
		First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

// SaveAsPrimary persists the address and demotes the user's other primary
// addresses in the same transaction
func (r *GormAddressRepository) SaveAsPrimary(ctx context.Context, addr *address.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(addr).Error; err != nil {
			return err
		}
		return tx.Model(&address.Address{}).
			Where("user_id = ? AND is_primary = ? AND id <> ?", addr.UserID, true, addr.ID).
			Update("is_primary", false).Error
	})
}

// Save persists an address
func (r *GormAddressRepository) Save(ctx context.Context, addr *address.Address) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

// Delete removes an address by ID
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&address.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts addresses matching the filter
func (r *GormAddressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&address.Address{})
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
