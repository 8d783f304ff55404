package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/shared"
)

// Product represents a sellable product in the catalog. It is the
// aggregate root for its variants and images. A customizable product
// additionally carries the base price used when pricing custom designs
// built on top of it.
type Product struct {
	shared.BaseAggregateRoot
	SKU            string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string           `gorm:"type:varchar(100);not null"`
	Description    string           `gorm:"type:text"`
	Brand          string           `gorm:"type:varchar(50)"`
	Price          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	IsActive       bool             `gorm:"not null;default:true"`
	IsCustomizable bool             `gorm:"not null;default:false"`
	BasePrice      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ColorOptions   []string         `gorm:"type:jsonb;serializer:json"`
	Categories     []Category       `gorm:"many2many:product_category_assignments"`
	Variants       []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images         []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(sku, name string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Price:             price,
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(brand) > 50 {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot exceed 50 characters")
	}

	p.Name = name
	p.Description = description
	p.Brand = brand
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice changes the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price
	p.touch()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, price))

	return nil
}

// EnableCustomization marks the product as customizable with the given
// base price for designs built on it
func (p *Product) EnableCustomization(basePrice decimal.Decimal) error {
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	p.IsCustomizable = true
	p.BasePrice = &basePrice
	p.touch()

	return nil
}

// DisableCustomization turns customization off
func (p *Product) DisableCustomization() {
	p.IsCustomizable = false
	p.BasePrice = nil
	p.touch()
}

// SetColorOptions replaces the list of available colors
func (p *Product) SetColorOptions(colors []string) error {
	for _, c := range colors {
		if c == "" || len(c) > 50 {
			return shared.NewDomainError("INVALID_COLOR", "Color name must be 1 to 50 characters")
		}
	}

	p.ColorOptions = colors
	p.touch()

	return nil
}

// Activate makes the product visible and sellable
func (p *Product) Activate() {
	if p.IsActive {
		return
	}
	p.IsActive = true
	p.touch()
}

// Deactivate hides the product from the catalog
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.touch()
	p.AddDomainEvent(NewProductDeactivatedEvent(p))
}

// AddVariant adds a variant to the product
func (p *Product) AddVariant(sku, description string, priceOverride *decimal.Decimal) (*ProductVariant, error) {
	variant, err := newProductVariant(p.ID, sku, description, priceOverride)
	if err != nil {
		return nil, err
	}

	for _, v := range p.Variants {
		if v.SKU == variant.SKU {
			return nil, shared.NewDomainError("DUPLICATE_SKU", "A variant with this SKU already exists")
		}
	}

	p.Variants = append(p.Variants, *variant)
	p.touch()

	return variant, nil
}

// AddImage attaches an image to the product. The first image, or an
// image marked main, becomes the main image.
func (p *Product) AddImage(url, altText string, isMain bool) (*ProductImage, error) {
	image, err := newProductImage(p.ID, url, altText)
	if err != nil {
		return nil, err
	}

	if isMain || len(p.Images) == 0 {
		for i := range p.Images {
			p.Images[i].IsMain = false
		}
		image.IsMain = true
	}

	p.Images = append(p.Images, *image)
	p.touch()

	return image, nil
}

// MainImage returns the main image, or nil if the product has none
func (p *Product) MainImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	return nil
}

// VariantBySKU finds a variant by SKU
func (p *Product) VariantBySKU(sku string) *ProductVariant {
	sku = strings.ToUpper(sku)
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ProductVariant is a purchasable variation of a product (size, color)
type ProductVariant struct {
	shared.BaseEntity
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	SKU           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description   string           `gorm:"type:varchar(100)"`
	PriceOverride *decimal.Decimal `gorm:"type:decimal(12,2)"`
	StockQuantity int              `gorm:"not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

func newProductVariant(productID uuid.UUID, sku, description string, priceOverride *decimal.Decimal) (*ProductVariant, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if len(description) > 100 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Variant description cannot exceed 100 characters")
	}
	if priceOverride != nil && priceOverride.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price override cannot be negative")
	}

	return &ProductVariant{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		SKU:           strings.ToUpper(sku),
		Description:   description,
		PriceOverride: priceOverride,
		IsActive:      true,
	}, nil
}

// EffectivePrice returns the variant's price, falling back to the
// product price when no override is set
func (v *ProductVariant) EffectivePrice(productPrice decimal.Decimal) decimal.Decimal {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return productPrice
}

// ProductImage is an image attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(100)"`
	IsMain    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

func newProductImage(productID uuid.UUID, url, altText string) (*ProductImage, error) {
	if url == "" || len(url) > 500 {
		return nil, shared.NewDomainError("INVALID_URL", "Image URL must be 1 to 500 characters")
	}
	if len(altText) > 100 {
		return nil, shared.NewDomainError("INVALID_ALT_TEXT", "Alt text cannot exceed 100 characters")
	}

	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		URL:        url,
		AltText:    altText,
	}, nil
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}
