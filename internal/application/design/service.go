package design

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/tienda/backend/internal/application/catalog"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// ServiceConfig holds configuration for the design service
type ServiceConfig struct {
	UploadURLExpiry time.Duration
	PublicBaseURL   string
}

// Service handles custom design operations
type Service struct {
	designRepo     design.Repository
	productRepo    catalog.ProductRepository
	storage        catalogapp.ObjectStorageService
	eventPublisher shared.EventPublisher
	config         ServiceConfig
}

// NewService creates a new design service
func NewService(
	designRepo design.Repository,
	productRepo catalog.ProductRepository,
	storage catalogapp.ObjectStorageService,
	eventPublisher shared.EventPublisher,
	config ServiceConfig,
) *Service {
	if config.UploadURLExpiry == 0 {
		config.UploadURLExpiry = 15 * time.Minute
	}
	return &Service{
		designRepo:     designRepo,
		productRepo:    productRepo,
		storage:        storage,
		eventPublisher: eventPublisher,
		config:         config,
	}
}

// Create saves a design on top of a customizable base product
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateDesignRequest) (*DesignResponse, error) {
	baseProduct, err := s.productRepo.FindByID(ctx, req.BaseProductID)
	if err != nil {
		return nil, err
	}

	customDesign, err := design.NewCustomDesign(userID, baseProduct, req.ImageURL, req.Parameters)
	if err != nil {
		return nil, err
	}

	if req.ThumbnailURL != "" {
		if err := customDesign.SetThumbnail(req.ThumbnailURL); err != nil {
			return nil, err
		}
	}
	if req.Colors != "" {
		if err := customDesign.SetColors(req.Colors); err != nil {
			return nil, err
		}
	}

	if err := s.designRepo.Save(ctx, customDesign); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customDesign)

	response := ToDesignResponse(customDesign)
	return &response, nil
}

// GetByID retrieves one of the user's designs
func (s *Service) GetByID(ctx context.Context, userID, designID uuid.UUID) (*DesignResponse, error) {
	customDesign, err := s.findOwned(ctx, userID, designID)
	if err != nil {
		return nil, err
	}

	response := ToDesignResponse(customDesign)
	return &response, nil
}

// List retrieves the user's designs, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter DesignListFilter) (*DesignListResponse, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	designs, err := s.designRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.designRepo.Count(ctx, shared.Filter{
		Filters: map[string]any{"user_id": userID},
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(domainFilter.PageSize) - 1) / int64(domainFilter.PageSize))

	return &DesignListResponse{
		Items:      ToDesignResponses(designs),
		Total:      total,
		Page:       domainFilter.Page,
		PageSize:   domainFilter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update reworks an existing design's image and parameters
func (s *Service) Update(ctx context.Context, userID, designID uuid.UUID, req UpdateDesignRequest) (*DesignResponse, error) {
	customDesign, err := s.findOwned(ctx, userID, designID)
	if err != nil {
		return nil, err
	}

	if err := customDesign.UpdateParameters(req.Parameters, req.ImageURL); err != nil {
		return nil, err
	}
	if req.ThumbnailURL != nil {
		if err := customDesign.SetThumbnail(*req.ThumbnailURL); err != nil {
			return nil, err
		}
	}
	if req.Colors != nil {
		if err := customDesign.SetColors(*req.Colors); err != nil {
			return nil, err
		}
	}

	if err := s.designRepo.Save(ctx, customDesign); err != nil {
		return nil, err
	}

	response := ToDesignResponse(customDesign)
	return &response, nil
}

// Delete removes one of the user's designs
func (s *Service) Delete(ctx context.Context, userID, designID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, designID); err != nil {
		return err
	}

	return s.designRepo.Delete(ctx, designID)
}

// InitiateUpload returns a presigned URL for uploading a design image
func (s *Service) InitiateUpload(ctx context.Context, userID uuid.UUID, req InitiateDesignUploadRequest) (*InitiateDesignUploadResponse, error) {
	if !catalogapp.AllowedImageContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for design images", req.ContentType))
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	storageKey := fmt.Sprintf("designs/%s/%s%s", userID.String(), uuid.New().String(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateDesignUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
		PublicURL:  s.publicURL(storageKey),
	}, nil
}

func (s *Service) findOwned(ctx context.Context, userID, designID uuid.UUID) (*design.CustomDesign, error) {
	customDesign, err := s.designRepo.FindByID(ctx, designID)
	if err != nil {
		return nil, err
	}
	if customDesign.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "Design belongs to another user")
	}
	return customDesign, nil
}

func (s *Service) publicURL(storageKey string) string {
	if s.config.PublicBaseURL == "" {
		return storageKey
	}
	return strings.TrimSuffix(s.config.PublicBaseURL, "/") + "/" + storageKey
}

func (s *Service) publishEvents(ctx context.Context, d *design.CustomDesign) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range d.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	d.ClearDomainEvents()
}
