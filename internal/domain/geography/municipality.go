package geography

import (
	"strings"

	"github.com/tienda/backend/internal/domain/shared"
)

// MunicipalityType distinguishes ordinary municipalities from districts
type MunicipalityType string

const (
	MunicipalityTypeMunicipio MunicipalityType = "MUNICIPIO"
	MunicipalityTypeDistrito  MunicipalityType = "DISTRITO"
)

// IsValid checks if the type is a known MunicipalityType
func (t MunicipalityType) IsValid() bool {
	return t == MunicipalityTypeMunicipio || t == MunicipalityTypeDistrito
}

// MunicipalityCategory is the fiscal category assigned to a municipality
type MunicipalityCategory string

const (
	MunicipalityCategoryA MunicipalityCategory = "A"
	MunicipalityCategoryB MunicipalityCategory = "B"
	MunicipalityCategoryC MunicipalityCategory = "C"
)

// IsValid checks if the category is a known MunicipalityCategory
func (c MunicipalityCategory) IsValid() bool {
	switch c {
	case MunicipalityCategoryA, MunicipalityCategoryB, MunicipalityCategoryC:
		return true
	}
	return false
}

// Municipality represents a Colombian municipality or district, keyed by its
// five-digit DANE code. The first two digits are the department code.
type Municipality struct {
	Code           string               `gorm:"type:varchar(5);primaryKey"`
	DepartmentCode string               `gorm:"type:varchar(2);not null;index;uniqueIndex:idx_municipality_dept_name,priority:1"`
	Department     *Department          `gorm:"foreignKey:DepartmentCode;references:Code;constraint:OnDelete:CASCADE"`
	Name           string               `gorm:"type:varchar(60);not null;uniqueIndex:idx_municipality_dept_name,priority:2"`
	Type           MunicipalityType     `gorm:"type:varchar(10);not null;default:'MUNICIPIO'"`
	Category       MunicipalityCategory `gorm:"type:varchar(1)"`
}

// TableName returns the table name for GORM
func (Municipality) TableName() string {
	return "municipalities"
}

// NewMunicipality creates a municipality from its DANE code and name.
// The code's department prefix must match the given department code.
func NewMunicipality(code, departmentCode, name string) (*Municipality, error) {
	if err := ValidateMunicipalityCode(code); err != nil {
		return nil, err
	}
	if err := ValidateDepartmentCode(departmentCode); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(code, departmentCode) {
		return nil, shared.NewDomainError("INVALID_DANE_CODE", "Municipality DANE code must start with its department code")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Municipality name cannot be empty")
	}
	if len(name) > 60 {
		return nil, shared.NewDomainError("INVALID_NAME", "Municipality name cannot exceed 60 characters")
	}

	return &Municipality{
		Code:           code,
		DepartmentCode: departmentCode,
		Name:           name,
		Type:           MunicipalityTypeMunicipio,
	}, nil
}

// MarkAsDistrict flags the municipality as a special district (e.g., Bogotá D.C.)
func (m *Municipality) MarkAsDistrict() {
	m.Type = MunicipalityTypeDistrito
}

// SetCategory assigns the fiscal category
func (m *Municipality) SetCategory(category MunicipalityCategory) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown municipality category")
	}
	m.Category = category
	return nil
}

// ValidateMunicipalityCode validates a five-digit DANE municipality code
func ValidateMunicipalityCode(code string) error {
	if len(code) != 5 {
		return shared.NewDomainError("INVALID_DANE_CODE", "Municipality DANE code must be exactly 5 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_DANE_CODE", "Municipality DANE code must be numeric")
		}
	}
	return nil
}
