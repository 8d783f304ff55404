package geography

import (
	"context"
	"time"

	"github.com/tienda/backend/internal/domain/geography"
)

// Cache keys for geography reference data
const (
	cacheKeyDepartments    = "geo:departments"
	cacheKeyMunicipalities = "geo:municipalities:"
	cacheKeyNeighborhoods  = "geo:neighborhoods:"
)

// Reference data changes only on DANE updates, so a long TTL is fine
const referenceTTL = 24 * time.Hour

// ReferenceCache caches serialized geography listings
type ReferenceCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Service handles geography reference data operations
type Service struct {
	departments    geography.DepartmentRepository
	municipalities geography.MunicipalityRepository
	neighborhoods  geography.NeighborhoodRepository
	cache          ReferenceCache
}

// NewService creates a new geography Service
func NewService(
	departments geography.DepartmentRepository,
	municipalities geography.MunicipalityRepository,
	neighborhoods geography.NeighborhoodRepository,
) *Service {
	return &Service{
		departments:    departments,
		municipalities: municipalities,
		neighborhoods:  neighborhoods,
	}
}

// SetCache enables read-through caching of the listings
func (s *Service) SetCache(cache ReferenceCache) {
	s.cache = cache
}

// ListDepartments returns all departments ordered by name
func (s *Service) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	if s.cache != nil {
		var cached []DepartmentResponse
		if hit, err := s.cache.Get(ctx, cacheKeyDepartments, &cached); err == nil && hit {
			return cached, nil
		}
	}

	departments, err := s.departments.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := ToDepartmentResponses(departments)
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyDepartments, out, referenceTTL)
	}

	return out, nil
}

// GetDepartment returns one department by DANE code
func (s *Service) GetDepartment(ctx context.Context, code string) (*DepartmentResponse, error) {
	if err := geography.ValidateDepartmentCode(code); err != nil {
		return nil, err
	}

	department, err := s.departments.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToDepartmentResponse(department)
	return &response, nil
}

// ListMunicipalities returns the municipalities of a department
func (s *Service) ListMunicipalities(ctx context.Context, departmentCode string) ([]MunicipalityResponse, error) {
	if err := geography.ValidateDepartmentCode(departmentCode); err != nil {
		return nil, err
	}

	key := cacheKeyMunicipalities + departmentCode
	if s.cache != nil {
		var cached []MunicipalityResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	municipalities, err := s.municipalities.FindByDepartment(ctx, departmentCode)
	if err != nil {
		return nil, err
	}

	out := ToMunicipalityResponses(municipalities)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, referenceTTL)
	}

	return out, nil
}

// GetMunicipality returns one municipality by DANE code
func (s *Service) GetMunicipality(ctx context.Context, code string) (*MunicipalityResponse, error) {
	if err := geography.ValidateMunicipalityCode(code); err != nil {
		return nil, err
	}

	municipality, err := s.municipalities.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToMunicipalityResponse(municipality)
	return &response, nil
}

// ListNeighborhoods returns the neighborhoods of a municipality
func (s *Service) ListNeighborhoods(ctx context.Context, municipalityCode string) ([]NeighborhoodResponse, error) {
	if err := geography.ValidateMunicipalityCode(municipalityCode); err != nil {
		return nil, err
	}

	key := cacheKeyNeighborhoods + municipalityCode
	if s.cache != nil {
		var cached []NeighborhoodResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	neighborhoods, err := s.neighborhoods.FindByMunicipality(ctx, municipalityCode)
	if err != nil {
		return nil, err
	}

	out := ToNeighborhoodResponses(neighborhoods)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, referenceTTL)
	}

	return out, nil
}

// SaveDepartment upserts a department and invalidates the listing cache
func (s *Service) SaveDepartment(ctx context.Context, code, name, phonePrefix string) (*DepartmentResponse, error) {
	department, err := geography.NewDepartment(code, name)
	if err != nil {
		return nil, err
	}
	if phonePrefix != "" {
		if err := department.SetPhonePrefix(phonePrefix); err != nil {
			return nil, err
		}
	}

	if err := s.departments.Save(ctx, department); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cacheKeyDepartments)
	}

	response := ToDepartmentResponse(department)
	return &response, nil
}

// SaveMunicipality upserts a municipality and invalidates the cached
// listing of its department
func (s *Service) SaveMunicipality(ctx context.Context, req SeedMunicipalityRequest) (*MunicipalityResponse, error) {
	municipality, err := geography.NewMunicipality(req.Code, req.DepartmentCode, req.Name)
	if err != nil {
		return nil, err
	}
	if req.IsDistrict {
		municipality.MarkAsDistrict()
	}
	if req.Category != "" {
		if err := municipality.SetCategory(geography.MunicipalityCategory(req.Category)); err != nil {
			return nil, err
		}
	}

	if err := s.municipalities.Save(ctx, municipality); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cacheKeyMunicipalities+req.DepartmentCode)
	}

	response := ToMunicipalityResponse(municipality)
	return &response, nil
}

// SaveNeighborhood creates a neighborhood and invalidates the cached
// listing of its municipality
func (s *Service) SaveNeighborhood(ctx context.Context, req SeedNeighborhoodRequest) (*NeighborhoodResponse, error) {
	neighborhood, err := geography.NewNeighborhood(req.MunicipalityCode, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Zone != "" {
		if err := neighborhood.SetZone(req.Zone); err != nil {
			return nil, err
		}
	}
	if req.AverageStratum != nil {
		if err := neighborhood.SetAverageStratum(*req.AverageStratum); err != nil {
			return nil, err
		}
	}

	if err := s.neighborhoods.Save(ctx, neighborhood); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cacheKeyNeighborhoods+req.MunicipalityCode)
	}

	response := ToNeighborhoodResponse(neighborhood)
	return &response, nil
}
