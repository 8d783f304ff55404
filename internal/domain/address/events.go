package address

import (
	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Aggregate type constant for Address
const AggregateTypeAddress = "Address"

// Address domain event types
const (
	EventTypeAddressCreated       = "AddressCreated"
	EventTypeAddressVerified      = "AddressVerified"
	EventTypeAddressMarkedPrimary = "AddressMarkedPrimary"
)

// AddressCreatedEvent is published when an address is created
type AddressCreatedEvent struct {
	shared.BaseDomainEvent
	UserID           uuid.UUID `json:"user_id"`
	MunicipalityCode string    `json:"municipality_code"`
}

// NewAddressCreatedEvent creates a new AddressCreatedEvent
func NewAddressCreatedEvent(addr *Address) *AddressCreatedEvent {
	return &AddressCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAddressCreated, addr.ID, AggregateTypeAddress),
		UserID:           addr.UserID,
		MunicipalityCode: addr.MunicipalityCode,
	}
}

// AddressVerifiedEvent is published when an address becomes verified
type AddressVerifiedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Source GeoSource `json:"source"`
}

// NewAddressVerifiedEvent creates a new AddressVerifiedEvent
func NewAddressVerifiedEvent(addr *Address) *AddressVerifiedEvent {
	return &AddressVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAddressVerified, addr.ID, AggregateTypeAddress),
		UserID:          addr.UserID,
		Source:          addr.GeoSource,
	}
}

// AddressMarkedPrimaryEvent is published when an address becomes the
// user's primary delivery address
type AddressMarkedPrimaryEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewAddressMarkedPrimaryEvent creates a new AddressMarkedPrimaryEvent
func NewAddressMarkedPrimaryEvent(addr *Address) *AddressMarkedPrimaryEvent {
	return &AddressMarkedPrimaryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAddressMarkedPrimary, addr.ID, AggregateTypeAddress),
		UserID:          addr.UserID,
	}
}
