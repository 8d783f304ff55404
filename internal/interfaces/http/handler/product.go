package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/tienda/backend/internal/application/catalog"
)

// ProductHandler serves the product catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	imageService   *catalogapp.ImageService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, imageService *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// ConfirmImageUploadRequest finalizes a previously initiated image upload
type ConfirmImageUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	AltText    string `json:"alt_text" binding:"max=200"`
	IsMain     bool   `json:"is_main"`
}

// Create registers a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// List returns a page of products with catalog filters applied
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalogapp.ProductListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, items, total, filter.Page, filter.PageSize)
}

// GetByID returns one product with variants, images and categories
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetBySKU returns one product by SKU
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	out, err := h.productService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Update changes mutable product fields
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Activate puts a product on sale
func (h *ProductHandler) Activate(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.productService.Activate(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Deactivate withdraws a product from sale
func (h *ProductHandler) Deactivate(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.productService.Deactivate(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// EnableCustomization marks the product as a valid base for custom designs
func (h *ProductHandler) EnableCustomization(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.EnableCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.productService.EnableCustomization(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// DisableCustomization turns off custom designs for the product
func (h *ProductHandler) DisableCustomization(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.productService.DisableCustomization(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// AddVariant adds a size/color variant to the product
func (h *ProductHandler) AddVariant(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.productService.AddVariant(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// AssignCategory links the product to a category
func (h *ProductHandler) AssignCategory(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.pathUUID(c, "category_id")
	if !ok {
		return
	}

	if err := h.productService.AssignCategory(c.Request.Context(), productID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UnassignCategory unlinks the product from a category
func (h *ProductHandler) UnassignCategory(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.pathUUID(c, "category_id")
	if !ok {
		return
	}

	if err := h.productService.UnassignCategory(c.Request.Context(), productID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InitiateImageUpload returns a presigned URL for a product image upload
func (h *ProductHandler) InitiateImageUpload(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.imageService.InitiateUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// ConfirmImageUpload attaches an uploaded image to the product
func (h *ProductHandler) ConfirmImageUpload(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req ConfirmImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.imageService.ConfirmUpload(c.Request.Context(), productID, req.StorageKey, req.AltText, req.IsMain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// RegisterRoutes mounts the product endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/:id", h.GetByID)
	products.GET("/sku/:sku", h.GetBySKU)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.POST("/:id/activate", h.Activate)
	products.POST("/:id/deactivate", h.Deactivate)
	products.POST("/:id/customization/enable", h.EnableCustomization)
	products.POST("/:id/customization/disable", h.DisableCustomization)
	products.POST("/:id/variants", h.AddVariant)
	products.POST("/:id/categories/:category_id", h.AssignCategory)
	products.DELETE("/:id/categories/:category_id", h.UnassignCategory)
	products.POST("/:id/images/initiate", h.InitiateImageUpload)
	products.POST("/:id/images/confirm", h.ConfirmImageUpload)
}
