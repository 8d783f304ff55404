package geography

import (
	"context"

	"github.com/google/uuid"
)

// DepartmentRepository defines persistence operations for departments
type DepartmentRepository interface {
	FindByCode(ctx context.Context, code string) (*Department, error)
	FindAll(ctx context.Context) ([]Department, error)
	Save(ctx context.Context, department *Department) error
}

// MunicipalityRepository defines persistence operations for municipalities
type MunicipalityRepository interface {
	FindByCode(ctx context.Context, code string) (*Municipality, error)
	FindByDepartment(ctx context.Context, departmentCode string) ([]Municipality, error)
	Save(ctx context.Context, municipality *Municipality) error
}

// NeighborhoodRepository defines persistence operations for neighborhoods
type NeighborhoodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Neighborhood, error)
	FindByMunicipality(ctx context.Context, municipalityCode string) ([]Neighborhood, error)
	Save(ctx context.Context, neighborhood *Neighborhood) error
}
