package geography

import (
	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Neighborhood represents a barrio inside a municipality. Unlike departments
// and municipalities it has no DANE identifier, so it carries a surrogate key.
type Neighborhood struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey"`
	MunicipalityCode string        `gorm:"type:varchar(5);not null;index;uniqueIndex:idx_neighborhood_mun_name,priority:1"`
	Municipality     *Municipality `gorm:"foreignKey:MunicipalityCode;references:Code;constraint:OnDelete:CASCADE"`
	Name             string        `gorm:"type:varchar(70);not null;uniqueIndex:idx_neighborhood_mun_name,priority:2"`
	Zone             string        `gorm:"type:varchar(2)"` // comuna or UPZ code
	AverageStratum   *int          `gorm:"type:smallint"`
}

// TableName returns the table name for GORM
func (Neighborhood) TableName() string {
	return "neighborhoods"
}

// NewNeighborhood creates a neighborhood within a municipality
func NewNeighborhood(municipalityCode, name string) (*Neighborhood, error) {
	if err := ValidateMunicipalityCode(municipalityCode); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Neighborhood name cannot be empty")
	}
	if len(name) > 70 {
		return nil, shared.NewDomainError("INVALID_NAME", "Neighborhood name cannot exceed 70 characters")
	}

	return &Neighborhood{
		ID:               uuid.New(),
		MunicipalityCode: municipalityCode,
		Name:             name,
	}, nil
}

// SetZone assigns the administrative zone code (comuna or UPZ)
func (n *Neighborhood) SetZone(zone string) error {
	if zone != "" && len(zone) > 2 {
		return shared.NewDomainError("INVALID_ZONE", "Zone code cannot exceed 2 characters")
	}
	n.Zone = zone
	return nil
}

// SetAverageStratum assigns the average socioeconomic stratum (1-6)
func (n *Neighborhood) SetAverageStratum(stratum int) error {
	if stratum < 1 || stratum > 6 {
		return shared.NewDomainError("INVALID_STRATUM", "Stratum must be between 1 and 6")
	}
	n.AverageStratum = &stratum
	return nil
}
