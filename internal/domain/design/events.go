package design

import (
	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/shared"
)

// Aggregate type constant for CustomDesign
const AggregateTypeCustomDesign = "CustomDesign"

// Design domain event types
const (
	EventTypeDesignCreated = "CustomDesignCreated"
)

// DesignCreatedEvent is published when a custom design is created
type DesignCreatedEvent struct {
	shared.BaseDomainEvent
	UserID        uuid.UUID `json:"user_id"`
	BaseProductID uuid.UUID `json:"base_product_id"`
}

// NewDesignCreatedEvent creates a new DesignCreatedEvent
func NewDesignCreatedEvent(design *CustomDesign) *DesignCreatedEvent {
	return &DesignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDesignCreated, design.ID, AggregateTypeCustomDesign),
		UserID:          design.UserID,
		BaseProductID:   design.BaseProductID,
	}
}
