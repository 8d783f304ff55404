package design

import (
	"time"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
)

// CustomDesign is a user-created design applied to a customizable base
// product. The editor's configuration is stored verbatim so the design
// can be reopened and re-rendered.
type CustomDesign struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	BaseProductID uuid.UUID        `gorm:"type:uuid;not null;index"`
	BaseProduct   *catalog.Product `gorm:"foreignKey:BaseProductID"`
	ImageURL      string           `gorm:"type:varchar(500);not null"`
	ThumbnailURL  string           `gorm:"type:varchar(500)"`
	Colors        string           `gorm:"type:varchar(100)"`
	Parameters    map[string]any   `gorm:"type:jsonb;serializer:json;not null"`
}

// TableName returns the table name for GORM
func (CustomDesign) TableName() string {
	return "custom_designs"
}

// NewCustomDesign creates a design on top of a customizable product
func NewCustomDesign(userID uuid.UUID, baseProduct *catalog.Product, imageURL string, parameters map[string]any) (*CustomDesign, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if baseProduct == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Base product is required")
	}
	if !baseProduct.IsCustomizable {
		return nil, shared.NewDomainError("NOT_CUSTOMIZABLE", "Base product does not accept customization")
	}
	if imageURL == "" || len(imageURL) > 500 {
		return nil, shared.NewDomainError("INVALID_URL", "Design image URL must be 1 to 500 characters")
	}
	if parameters == nil {
		return nil, shared.NewDomainError("INVALID_PARAMETERS", "Editor parameters are required")
	}

	design := &CustomDesign{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		BaseProductID:     baseProduct.ID,
		BaseProduct:       baseProduct,
		ImageURL:          imageURL,
		Parameters:        parameters,
	}

	design.AddDomainEvent(NewDesignCreatedEvent(design))

	return design, nil
}

// SetThumbnail sets the rendered thumbnail URL
func (d *CustomDesign) SetThumbnail(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_URL", "Thumbnail URL cannot exceed 500 characters")
	}
	d.ThumbnailURL = url
	d.touch()
	return nil
}

// SetColors records the colors used by the design
func (d *CustomDesign) SetColors(colors string) error {
	if len(colors) > 100 {
		return shared.NewDomainError("INVALID_COLORS", "Colors cannot exceed 100 characters")
	}
	d.Colors = colors
	d.touch()
	return nil
}

// UpdateParameters replaces the editor configuration and the rendered
// image it produced
func (d *CustomDesign) UpdateParameters(parameters map[string]any, imageURL string) error {
	if parameters == nil {
		return shared.NewDomainError("INVALID_PARAMETERS", "Editor parameters are required")
	}
	if imageURL == "" || len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_URL", "Design image URL must be 1 to 500 characters")
	}

	d.Parameters = parameters
	d.ImageURL = imageURL
	d.touch()

	return nil
}

func (d *CustomDesign) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
