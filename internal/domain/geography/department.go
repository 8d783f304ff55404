package geography

import (
	"github.com/tienda/backend/internal/domain/shared"
)

// Department represents a Colombian department, keyed by its two-digit
// DANE code. Departments are static reference data seeded from the
// official DANE division listing.
type Department struct {
	Code        string `gorm:"type:varchar(2);primaryKey"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	PhonePrefix string `gorm:"type:varchar(3)"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// NewDepartment creates a department from its DANE code and name
func NewDepartment(code, name string) (*Department, error) {
	if err := ValidateDepartmentCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Department name cannot exceed 50 characters")
	}
	return &Department{Code: code, Name: name}, nil
}

// SetPhonePrefix sets the national phone prefix for the department
func (d *Department) SetPhonePrefix(prefix string) error {
	if prefix != "" && len(prefix) > 3 {
		return shared.NewDomainError("INVALID_PREFIX", "Phone prefix cannot exceed 3 digits")
	}
	d.PhonePrefix = prefix
	return nil
}

// ValidateDepartmentCode validates a two-digit DANE department code
func ValidateDepartmentCode(code string) error {
	if len(code) != 2 {
		return shared.NewDomainError("INVALID_DANE_CODE", "Department DANE code must be exactly 2 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_DANE_CODE", "Department DANE code must be numeric")
		}
	}
	return nil
}
