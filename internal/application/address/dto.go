package address

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/address"
)

// ComplementInput is one complement level in an address request
type ComplementInput struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required,max=10"`
}

// CoordinatesInput carries geocoding data for an address
type CoordinatesInput struct {
	Latitude  decimal.Decimal `json:"latitude" binding:"required"`
	Longitude decimal.Decimal `json:"longitude" binding:"required"`
	Source    string          `json:"source" binding:"required"`
	Precision string          `json:"precision"`
}

// CreateAddressRequest is the input for creating a delivery address
type CreateAddressRequest struct {
	MunicipalityCode string            `json:"municipality_code" binding:"required,danecode"`
	NeighborhoodID   *uuid.UUID        `json:"neighborhood_id"`
	ViaType          string            `json:"via_type" binding:"required"`
	ViaNumber        string            `json:"via_number" binding:"required,max=10"`
	ViaLetter        string            `json:"via_letter" binding:"max=1"`
	Bis              bool              `json:"bis"`
	Sector           string            `json:"sector"`
	CrossViaType     string            `json:"cross_via_type"`
	CrossViaNumber   string            `json:"cross_via_number"`
	CrossViaLetter   string            `json:"cross_via_letter" binding:"max=1"`
	PlateNumber      string            `json:"plate_number" binding:"max=10"`
	Complements      []ComplementInput `json:"complements" binding:"max=4"`
	PostalCode       string            `json:"postal_code"`
	Stratum          *int              `json:"stratum" binding:"omitempty,stratum"`
	Coordinates      *CoordinatesInput `json:"coordinates"`
	IsPrimary        bool              `json:"is_primary"`
}

// UpdateCoordinatesRequest is the input for geocoding an existing address
type UpdateCoordinatesRequest struct {
	Latitude  decimal.Decimal `json:"latitude" binding:"required"`
	Longitude decimal.Decimal `json:"longitude" binding:"required"`
	Source    string          `json:"source" binding:"required"`
	Precision string          `json:"precision"`
}

// ComplementResponse is one complement level in an address response
type ComplementResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// AddressResponse is the public representation of an address
type AddressResponse struct {
	ID               uuid.UUID            `json:"id"`
	UserID           uuid.UUID            `json:"user_id"`
	MunicipalityCode string               `json:"municipality_code"`
	NeighborhoodID   *uuid.UUID           `json:"neighborhood_id,omitempty"`
	ViaType          string               `json:"via_type"`
	ViaNumber        string               `json:"via_number"`
	ViaLetter        string               `json:"via_letter,omitempty"`
	Bis              bool                 `json:"bis"`
	Sector           string               `json:"sector,omitempty"`
	CrossViaType     string               `json:"cross_via_type,omitempty"`
	CrossViaNumber   string               `json:"cross_via_number,omitempty"`
	CrossViaLetter   string               `json:"cross_via_letter,omitempty"`
	PlateNumber      string               `json:"plate_number,omitempty"`
	Complements      []ComplementResponse `json:"complements,omitempty"`
	PostalCode       string               `json:"postal_code,omitempty"`
	Stratum          *int                 `json:"stratum,omitempty"`
	Latitude         *decimal.Decimal     `json:"latitude,omitempty"`
	Longitude        *decimal.Decimal     `json:"longitude,omitempty"`
	GeoPrecision     string               `json:"geo_precision,omitempty"`
	GeoSource        string               `json:"geo_source,omitempty"`
	Verified         bool                 `json:"verified"`
	State            string               `json:"state"`
	IsPrimary        bool                 `json:"is_primary"`
	FullAddress      string               `json:"full_address"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// ToAddressResponse converts an address aggregate to its response form
func ToAddressResponse(addr *address.Address) AddressResponse {
	complements := make([]ComplementResponse, 0, len(addr.Complements))
	for _, c := range addr.Complements {
		complements = append(complements, ComplementResponse{
			Type:  string(c.Type),
			Value: c.Value,
		})
	}

	return AddressResponse{
		ID:               addr.ID,
		UserID:           addr.UserID,
		MunicipalityCode: addr.MunicipalityCode,
		NeighborhoodID:   addr.NeighborhoodID,
		ViaType:          string(addr.ViaType),
		ViaNumber:        addr.ViaNumber,
		ViaLetter:        addr.ViaLetter,
		Bis:              addr.Bis,
		Sector:           string(addr.Sector),
		CrossViaType:     string(addr.CrossViaType),
		CrossViaNumber:   addr.CrossViaNumber,
		CrossViaLetter:   addr.CrossViaLetter,
		PlateNumber:      addr.PlateNumber,
		Complements:      complements,
		PostalCode:       addr.PostalCode,
		Stratum:          addr.Stratum,
		Latitude:         addr.Latitude,
		Longitude:        addr.Longitude,
		GeoPrecision:     addr.GeoPrecision,
		GeoSource:        string(addr.GeoSource),
		Verified:         addr.Verified,
		State:            string(addr.State),
		IsPrimary:        addr.IsPrimary,
		FullAddress:      addr.FullAddress(),
		CreatedAt:        addr.CreatedAt,
		UpdatedAt:        addr.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(addresses []address.Address) []AddressResponse {
	responses := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, ToAddressResponse(&addresses[i]))
	}
	return responses
}
