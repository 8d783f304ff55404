package design

import (
	"time"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/design"
)

// CreateDesignRequest is the input for saving a custom design
type CreateDesignRequest struct {
	BaseProductID uuid.UUID      `json:"base_product_id" binding:"required"`
	ImageURL      string         `json:"image_url" binding:"required,max=500"`
	ThumbnailURL  string         `json:"thumbnail_url" binding:"max=500"`
	Colors        string         `json:"colors" binding:"max=100"`
	Parameters    map[string]any `json:"parameters" binding:"required"`
}

// UpdateDesignRequest is the input for reworking an existing design
type UpdateDesignRequest struct {
	ImageURL     string         `json:"image_url" binding:"required,max=500"`
	ThumbnailURL *string        `json:"thumbnail_url"`
	Colors       *string        `json:"colors"`
	Parameters   map[string]any `json:"parameters" binding:"required"`
}

// DesignListFilter carries listing parameters for a user's designs
type DesignListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// DesignResponse is the public representation of a custom design
type DesignResponse struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	BaseProductID uuid.UUID      `json:"base_product_id"`
	ImageURL      string         `json:"image_url"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	Colors        string         `json:"colors,omitempty"`
	Parameters    map[string]any `json:"parameters"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DesignListResponse is a paginated list of designs
type DesignListResponse struct {
	Items      []DesignResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// InitiateDesignUploadRequest is the input for starting a design image upload
type InitiateDesignUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateDesignUploadResponse carries the presigned upload URL
type InitiateDesignUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
	PublicURL  string    `json:"public_url"`
}

// ToDesignResponse converts a design aggregate to its response form
func ToDesignResponse(d *design.CustomDesign) DesignResponse {
	return DesignResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		BaseProductID: d.BaseProductID,
		ImageURL:      d.ImageURL,
		ThumbnailURL:  d.ThumbnailURL,
		Colors:        d.Colors,
		Parameters:    d.Parameters,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDesignResponses converts a slice of designs
func ToDesignResponses(designs []design.CustomDesign) []DesignResponse {
	responses := make([]DesignResponse, 0, len(designs))
	for i := range designs {
		responses = append(responses, ToDesignResponse(&designs[i]))
	}
	return responses
}
