package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/geography"
	"github.com/tienda/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDepartmentRepository implements geography.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// FindByCode finds a department by its DANE code
func (r *GormDepartmentRepository) FindByCode(ctx context.Context, code string) (*geography.Department, error) {
	var dept geography.Department
	if err := r.db.WithContext(ctx).First(&dept, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

// FindAll returns every department ordered by code
func (r *GormDepartmentRepository) FindAll(ctx context.Context) ([]geography.Department, error) {
	var depts []geography.Department
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// Save upserts a department keyed by DANE code
func (r *GormDepartmentRepository) Save(ctx context.Context, dept *geography.Department) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(dept).Error
}

// GormMunicipalityRepository implements geography.MunicipalityRepository using GORM
type GormMunicipalityRepository struct {
	db *gorm.DB
}

// NewGormMunicipalityRepository creates a new GormMunicipalityRepository
func NewGormMunicipalityRepository(db *gorm.DB) *GormMunicipalityRepository {
	return &GormMunicipalityRepository{db: db}
}

// FindByCode finds a municipality by its five-digit DANE code
func (r *GormMunicipalityRepository) FindByCode(ctx context.Context, code string) (*geography.Municipality, error) {
	var mun geography.Municipality
	if err := r.db.WithContext(ctx).First(&mun, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mun, nil
}

// FindByDepartment returns the municipalities of a department ordered by name
func (r *GormMunicipalityRepository) FindByDepartment(ctx context.Context, departmentCode string) ([]geography.Municipality, error) {
	var muns []geography.Municipality
	if err := r.db.WithContext(ctx).
		Where("department_code = ?", departmentCode).
		Order("name ASC").
		Find(&muns).Error; err != nil {
		return nil, err
	}
	return muns, nil
}

// Save upserts a municipality keyed by DANE code
func (r *GormMunicipalityRepository) Save(ctx context.Context, mun *geography.Municipality) error {
	return r.db.WithContext(ctx).
		Omit("Department").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(mun).Error
}

// GormNeighborhoodRepository implements geography.NeighborhoodRepository using GORM
type GormNeighborhoodRepository struct {
	db *gorm.DB
}

// NewGormNeighborhoodRepository creates a new GormNeighborhoodRepository
func NewGormNeighborhoodRepository(db *gorm.DB) *GormNeighborhoodRepository {
	return &GormNeighborhoodRepository{db: db}
}

// FindByID finds a neighborhood by its ID
func (r *GormNeighborhoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.Neighborhood, error) {
	var n geography.Neighborhood
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindByMunicipality returns the neighborhoods of a municipality ordered by name
func (r *GormNeighborhoodRepository) FindByMunicipality(ctx context.Context, municipalityCode string) ([]geography.Neighborhood, error) {
	var ns []geography.Neighborhood
	if err := r.db.WithContext(ctx).
		Where("municipality_code = ?", municipalityCode).
		Order("name ASC").
		Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

// Save persists a neighborhood
func (r *GormNeighborhoodRepository) Save(ctx context.Context, n *geography.Neighborhood) error {
	return r.db.WithContext(ctx).Omit("Municipality").Save(n).Error
}
