package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/catalog"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	ColorOptions []string        `json:"color_options"`
	CategoryIDs  []uuid.UUID     `json:"category_ids"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Brand        *string          `json:"brand"`
	Price        *decimal.Decimal `json:"price"`
	ColorOptions []string         `json:"color_options"`
}

// EnableCustomizationRequest is the input for making a product customizable
type EnableCustomizationRequest struct {
	BasePrice decimal.Decimal `json:"base_price" binding:"required"`
}

// AddVariantRequest is the input for adding a product variant
type AddVariantRequest struct {
	SKU           string           `json:"sku" binding:"required"`
	Description   string           `json:"description"`
	PriceOverride *decimal.Decimal `json:"price_override"`
}

// ProductListFilter holds filtering and pagination options for product lists
type ProductListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	ActiveOnly bool       `form:"active_only"`
}

// ProductResponse is the full product representation
type ProductResponse struct {
	ID             uuid.UUID         `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Brand          string            `json:"brand"`
	Price          decimal.Decimal   `json:"price"`
	IsActive       bool              `json:"is_active"`
	IsCustomizable bool              `json:"is_customizable"`
	BasePrice      *decimal.Decimal  `json:"base_price,omitempty"`
	ColorOptions   []string          `json:"color_options,omitempty"`
	Categories     []CategorySummary `json:"categories,omitempty"`
	Variants       []VariantResponse `json:"variants,omitempty"`
	Images         []ImageResponse   `json:"images,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductListResponse is the compact product representation for listings
type ProductListResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Price          decimal.Decimal `json:"price"`
	IsActive       bool            `json:"is_active"`
	IsCustomizable bool            `json:"is_customizable"`
	MainImageURL   string          `json:"main_image_url,omitempty"`
}

// VariantResponse represents a product variant
type VariantResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	StockQuantity  int             `json:"stock_quantity"`
	IsActive       bool            `json:"is_active"`
}

// ImageResponse represents a product image
type ImageResponse struct {
	ID      uuid.UUID `json:"id"`
	URL     string    `json:"url"`
	AltText string    `json:"alt_text"`
	IsMain  bool      `json:"is_main"`
}

// CategorySummary is the compact category representation embedded in products
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest is the input for updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse is the full category representation
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateReviewRequest is the input for creating a product review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewResponse represents a product review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductReviewsResponse bundles a product's reviews with its average rating
type ProductReviewsResponse struct {
	AverageRating float64          `json:"average_rating"`
	Reviews       []ReviewResponse `json:"reviews"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Brand:          p.Brand,
		Price:          p.Price,
		IsActive:       p.IsActive,
		IsCustomizable: p.IsCustomizable,
		BasePrice:      p.BasePrice,
		ColorOptions:   p.ColorOptions,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	for _, c := range p.Categories {
		resp.Categories = append(resp.Categories, CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, VariantResponse{
			ID:             v.ID,
			SKU:            v.SKU,
			Description:    v.Description,
			EffectivePrice: v.EffectivePrice(p.Price),
			StockQuantity:  v.StockQuantity,
			IsActive:       v.IsActive,
		})
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, ImageResponse{
			ID:      img.ID,
			URL:     img.URL,
			AltText: img.AltText,
			IsMain:  img.IsMain,
		})
	}

	return resp
}

// ToProductListResponses converts domain Products to list responses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		p := &products[i]
		resp := ProductListResponse{
			ID:             p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			Brand:          p.Brand,
			Price:          p.Price,
			IsActive:       p.IsActive,
			IsCustomizable: p.IsCustomizable,
		}
		if main := p.MainImage(); main != nil {
			resp.MainImageURL = main.URL
		}
		responses[i] = resp
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponses converts domain Categories to responses
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToReviewResponse converts a domain ProductReview to ReviewResponse
func ToReviewResponse(r *catalog.ProductReview) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ToReviewResponses converts domain ProductReviews to responses
func ToReviewResponses(reviews []catalog.ProductReview) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
