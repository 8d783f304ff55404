package address

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/shared"
)

// ViaType is the street designator used in Colombian addresses
type ViaType string

const (
	ViaAvenida     ViaType = "AV"
	ViaCalle       ViaType = "CL"
	ViaCarrera     ViaType = "KR"
	ViaDiagonal    ViaType = "DG"
	ViaTransversal ViaType = "TV"
)

var viaNames = map[ViaType]string{
	ViaAvenida:     "Avenida",
	ViaCalle:       "Calle",
	ViaCarrera:     "Carrera",
	ViaDiagonal:    "Diagonal",
	ViaTransversal: "Transversal",
}

// IsValid checks if the via type is known
func (v ViaType) IsValid() bool {
	_, ok := viaNames[v]
	return ok
}

// DisplayName returns the human-readable street designator
func (v ViaType) DisplayName() string {
	return viaNames[v]
}

// Sector is the cardinal sector qualifier of a via
type Sector string

const (
	SectorNorte Sector = "NORTE"
	SectorSur   Sector = "SUR"
	SectorEste  Sector = "ESTE"
	SectorOeste Sector = "OESTE"
)

// IsValid checks if the sector is known
func (s Sector) IsValid() bool {
	switch s {
	case SectorNorte, SectorSur, SectorEste, SectorOeste:
		return true
	}
	return false
}

// ComplementType identifies an address complement level
type ComplementType string

const (
	ComplementApartamento  ComplementType = "AP"
	ComplementBloque       ComplementType = "BLQ"
	ComplementEdificio     ComplementType = "ED"
	ComplementLote         ComplementType = "LT"
	ComplementManzana      ComplementType = "MN"
	ComplementOficina      ComplementType = "OF"
	ComplementPiso         ComplementType = "PN"
	ComplementUrbanizacion ComplementType = "UR"
)

// IsValid checks if the complement type is known
func (c ComplementType) IsValid() bool {
	switch c {
	case ComplementApartamento, ComplementBloque, ComplementEdificio,
		ComplementLote, ComplementManzana, ComplementOficina,
		ComplementPiso, ComplementUrbanizacion:
		return true
	}
	return false
}

// Complement is one level of address detail (apartment, tower, floor...)
type Complement struct {
	Type  ComplementType `json:"type"`
	Value string         `json:"value"`
}

// GeoSource identifies where the coordinates of an address came from
type GeoSource string

const (
	GeoSourceDAPM   GeoSource = "DAPM"   // Municipal planning office records
	GeoSourceGoogle GeoSource = "GOOGLE" // Google Maps geocoding
	GeoSourceManual GeoSource = "MANUAL" // Entered by the user
)

// IsValid checks if the source is known
func (g GeoSource) IsValid() bool {
	switch g {
	case GeoSourceDAPM, GeoSourceGoogle, GeoSourceManual:
		return true
	}
	return false
}

// IsTrusted reports whether coordinates from this source are accepted
// without manual review
func (g GeoSource) IsTrusted() bool {
	return g == GeoSourceDAPM || g == GeoSourceGoogle
}

// VerificationState tracks the review status of an address
type VerificationState string

const (
	VerificationPending  VerificationState = "PENDING"
	VerificationVerified VerificationState = "VERIFIED"
	VerificationInvalid  VerificationState = "INVALID"
)

// Address is a delivery address owned by a user, located inside the
// geographic hierarchy. It unifies the street structure, the optional
// cross street and the geocoding metadata in a single aggregate.
type Address struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index:idx_address_user_primary,priority:1"`
	MunicipalityCode string     `gorm:"type:varchar(5);not null;index"`
	NeighborhoodID   *uuid.UUID `gorm:"type:uuid;index"`

	ViaType   ViaType `gorm:"type:varchar(3);not null"`
	ViaNumber string  `gorm:"type:varchar(10);not null"`
	ViaLetter string  `gorm:"type:varchar(1)"`
	Bis       bool    `gorm:"not null;default:false"`
	Sector    Sector  `gorm:"type:varchar(5)"`

	CrossViaType   ViaType `gorm:"type:varchar(3)"`
	CrossViaNumber string  `gorm:"type:varchar(10)"`
	CrossViaLetter string  `gorm:"type:varchar(1)"`

	PlateNumber string       `gorm:"type:varchar(10)"`
	Complements []Complement `gorm:"type:jsonb;serializer:json"`

	PostalCode string `gorm:"type:varchar(6)"`
	Stratum    *int   `gorm:"type:smallint"`

	Latitude     *decimal.Decimal `gorm:"type:decimal(9,6)"`
	Longitude    *decimal.Decimal `gorm:"type:decimal(9,6)"`
	GeoPrecision string           `gorm:"type:varchar(10)"`
	GeoSource    GeoSource        `gorm:"type:varchar(20)"`

	Verified  bool              `gorm:"not null;default:false"`
	State     VerificationState `gorm:"type:varchar(20);not null;default:'PENDING'"`
	IsPrimary bool              `gorm:"not null;default:false;index:idx_address_user_primary,priority:2"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates an address for a user inside a municipality
func NewAddress(userID uuid.UUID, municipalityCode string, viaType ViaType, viaNumber, plateNumber string) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if len(municipalityCode) != 5 {
		return nil, shared.NewDomainError("INVALID_DANE_CODE", "Municipality DANE code must be exactly 5 digits")
	}
	if !viaType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VIA_TYPE", "Unknown via type")
	}
	if viaNumber == "" || len(viaNumber) > 10 {
		return nil, shared.NewDomainError("INVALID_VIA_NUMBER", "Via number must be 1 to 10 characters")
	}
	if len(plateNumber) > 10 {
		return nil, shared.NewDomainError("INVALID_PLATE", "Plate number cannot exceed 10 characters")
	}

	addr := &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		MunicipalityCode:  municipalityCode,
		ViaType:           viaType,
		ViaNumber:         viaNumber,
		PlateNumber:       plateNumber,
		State:             VerificationPending,
	}

	addr.AddDomainEvent(NewAddressCreatedEvent(addr))

	return addr, nil
}

// SetViaDetail sets the optional letter, bis flag and sector of the main via
func (a *Address) SetViaDetail(letter string, bis bool, sector Sector) error {
	if len(letter) > 1 {
		return shared.NewDomainError("INVALID_VIA_LETTER", "Via letter must be a single character")
	}
	if sector != "" && !sector.IsValid() {
		return shared.NewDomainError("INVALID_SECTOR", "Unknown sector")
	}

	a.ViaLetter = strings.ToUpper(letter)
	a.Bis = bis
	a.Sector = sector
	a.touch()

	return nil
}

// SetCrossVia sets the generating (cross) street of the address
func (a *Address) SetCrossVia(viaType ViaType, number, letter string) error {
	if !viaType.IsValid() {
		return shared.NewDomainError("INVALID_VIA_TYPE", "Unknown via type")
	}
	if number == "" || len(number) > 10 {
		return shared.NewDomainError("INVALID_VIA_NUMBER", "Via number must be 1 to 10 characters")
	}
	if len(letter) > 1 {
		return shared.NewDomainError("INVALID_VIA_LETTER", "Via letter must be a single character")
	}

	a.CrossViaType = viaType
	a.CrossViaNumber = number
	a.CrossViaLetter = strings.ToUpper(letter)
	a.touch()

	return nil
}

// Maximum complement levels carried by an address
const maxComplements = 4

// AddComplement appends a complement level (apartment, tower, floor...)
func (a *Address) AddComplement(ctype ComplementType, value string) error {
	if !ctype.IsValid() {
		return shared.NewDomainError("INVALID_COMPLEMENT", "Unknown complement type")
	}
	if value == "" || len(value) > 10 {
		return shared.NewDomainError("INVALID_COMPLEMENT", "Complement value must be 1 to 10 characters")
	}
	if len(a.Complements) >= maxComplements {
		return shared.NewDomainError("TOO_MANY_COMPLEMENTS", "An address carries at most 4 complement levels")
	}

	a.Complements = append(a.Complements, Complement{Type: ctype, Value: value})
	a.touch()

	return nil
}

// SetNeighborhood links the address to a neighborhood
func (a *Address) SetNeighborhood(neighborhoodID *uuid.UUID) {
	a.NeighborhoodID = neighborhoodID
	a.touch()
}

// SetPostalCode sets the postal code
func (a *Address) SetPostalCode(code string) error {
	if code != "" && len(code) != 6 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must be exactly 6 digits")
	}
	a.PostalCode = code
	a.touch()
	return nil
}

// SetStratum sets the socioeconomic stratum (1-6)
func (a *Address) SetStratum(stratum int) error {
	if stratum < 1 || stratum > 6 {
		return shared.NewDomainError("INVALID_STRATUM", "Stratum must be between 1 and 6")
	}
	a.Stratum = &stratum
	a.touch()
	return nil
}

// SetCoordinates records geocoding results. Coordinates coming from a
// trusted source verify the address immediately; manual coordinates
// leave it pending review.
func (a *Address) SetCoordinates(latitude, longitude decimal.Decimal, source GeoSource, precision string) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_GEO_SOURCE", "Unknown geolocation source")
	}
	if latitude.LessThan(decimal.NewFromInt(-90)) || latitude.GreaterThan(decimal.NewFromInt(90)) {
		return shared.NewDomainError("INVALID_COORDINATES", "Latitude must be between -90 and 90")
	}
	if longitude.LessThan(decimal.NewFromInt(-180)) || longitude.GreaterThan(decimal.NewFromInt(180)) {
		return shared.NewDomainError("INVALID_COORDINATES", "Longitude must be between -180 and 180")
	}

	a.Latitude = &latitude
	a.Longitude = &longitude
	a.GeoSource = source
	a.GeoPrecision = precision

	if source.IsTrusted() {
		a.Verified = true
		a.State = VerificationVerified
		a.AddDomainEvent(NewAddressVerifiedEvent(a))
	}
	a.touch()

	return nil
}

// MarkInvalid flags the address as failing verification
func (a *Address) MarkInvalid() {
	a.Verified = false
	a.State = VerificationInvalid
	a.touch()
}

// MarkPrimary flags this address as the user's primary delivery address.
// The caller is responsible for clearing the flag on the user's other
// addresses.
func (a *Address) MarkPrimary() {
	if a.IsPrimary {
		return
	}
	a.IsPrimary = true
	a.touch()
	a.AddDomainEvent(NewAddressMarkedPrimaryEvent(a))
}

// ClearPrimary removes the primary flag
func (a *Address) ClearPrimary() {
	if !a.IsPrimary {
		return
	}
	a.IsPrimary = false
	a.touch()
}

// HasCoordinates returns true if both coordinates are set
func (a *Address) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// FullAddress renders the address in the standard Colombian format,
// e.g. "Calle 5 # 36-08 BIS NORTE AP 101"
func (a *Address) FullAddress() string {
	var sb strings.Builder

	sb.WriteString(a.ViaType.DisplayName())
	sb.WriteString(" ")
	sb.WriteString(a.ViaNumber)
	sb.WriteString(a.ViaLetter)
	if a.Bis {
		sb.WriteString(" BIS")
	}
	if a.Sector != "" {
		sb.WriteString(" ")
		sb.WriteString(string(a.Sector))
	}

	if a.CrossViaNumber != "" {
		sb.WriteString(fmt.Sprintf(" # %s%s", a.CrossViaNumber, a.CrossViaLetter))
		if a.PlateNumber != "" {
			sb.WriteString("-")
			sb.WriteString(a.PlateNumber)
		}
	} else if a.PlateNumber != "" {
		sb.WriteString(" # ")
		sb.WriteString(a.PlateNumber)
	}

	for _, c := range a.Complements {
		sb.WriteString(fmt.Sprintf(" %s %s", c.Type, c.Value))
	}

	return sb.String()
}

func (a *Address) touch() {
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
