package geography

import (
	"github.com/tienda/backend/internal/domain/geography"
)

// SeedDepartmentRequest is the admin payload for upserting a department
type SeedDepartmentRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	PhonePrefix string `json:"phone_prefix"`
}

// SeedMunicipalityRequest is the admin payload for upserting a municipality
type SeedMunicipalityRequest struct {
	Code           string `json:"code" binding:"required"`
	DepartmentCode string `json:"department_code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	IsDistrict     bool   `json:"is_district"`
	Category       string `json:"category"`
}

// SeedNeighborhoodRequest is the admin payload for creating a neighborhood
type SeedNeighborhoodRequest struct {
	MunicipalityCode string `json:"municipality_code" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Zone             string `json:"zone"`
	AverageStratum   *int   `json:"average_stratum"`
}

// DepartmentResponse is the API representation of a department
type DepartmentResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	PhonePrefix string `json:"phone_prefix,omitempty"`
}

// MunicipalityResponse is the API representation of a municipality
type MunicipalityResponse struct {
	Code           string `json:"code"`
	DepartmentCode string `json:"department_code"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Category       string `json:"category,omitempty"`
}

// NeighborhoodResponse is the API representation of a neighborhood
type NeighborhoodResponse struct {
	ID               string `json:"id"`
	MunicipalityCode string `json:"municipality_code"`
	Name             string `json:"name"`
	Zone             string `json:"zone,omitempty"`
	AverageStratum   *int   `json:"average_stratum,omitempty"`
}

// ToDepartmentResponse converts a domain department to its response
func ToDepartmentResponse(d *geography.Department) DepartmentResponse {
	return DepartmentResponse{
		Code:        d.Code,
		Name:        d.Name,
		PhonePrefix: d.PhonePrefix,
	}
}

// ToDepartmentResponses converts a slice of departments
func ToDepartmentResponses(departments []geography.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(departments))
	for i := range departments {
		out[i] = ToDepartmentResponse(&departments[i])
	}
	return out
}

// ToMunicipalityResponse converts a domain municipality to its response
func ToMunicipalityResponse(m *geography.Municipality) MunicipalityResponse {
	return MunicipalityResponse{
		Code:           m.Code,
		DepartmentCode: m.DepartmentCode,
		Name:           m.Name,
		Type:           string(m.Type),
		Category:       string(m.Category),
	}
}

// ToMunicipalityResponses converts a slice of municipalities
func ToMunicipalityResponses(municipalities []geography.Municipality) []MunicipalityResponse {
	out := make([]MunicipalityResponse, len(municipalities))
	for i := range municipalities {
		out[i] = ToMunicipalityResponse(&municipalities[i])
	}
	return out
}

// ToNeighborhoodResponse converts a domain neighborhood to its response
func ToNeighborhoodResponse(n *geography.Neighborhood) NeighborhoodResponse {
	return NeighborhoodResponse{
		ID:               n.ID.String(),
		MunicipalityCode: n.MunicipalityCode,
		Name:             n.Name,
		Zone:             n.Zone,
		AverageStratum:   n.AverageStratum,
	}
}

// ToNeighborhoodResponses converts a slice of neighborhoods
func ToNeighborhoodResponses(neighborhoods []geography.Neighborhood) []NeighborhoodResponse {
	out := make([]NeighborhoodResponse, len(neighborhoods))
	for i := range neighborhoods {
		out[i] = ToNeighborhoodResponse(&neighborhoods[i])
	}
	return out
}
