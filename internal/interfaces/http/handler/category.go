package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/tienda/backend/internal/application/catalog"
)

// CategoryHandler serves the category tree
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create adds a category, optionally under a parent
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// ListRoots returns the top-level categories
func (h *CategoryHandler) ListRoots(c *gin.Context) {
	out, err := h.categoryService.ListRoots(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetByID returns one category
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetBySlug returns one category by its URL slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	out, err := h.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// ListChildren returns the direct children of a category
func (h *CategoryHandler) ListChildren(c *gin.Context) {
	categoryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.categoryService.ListChildren(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Update renames or re-describes a category
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.categoryService.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete removes a childless category
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes mounts the category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.POST("", h.Create)
	categories.GET("/roots", h.ListRoots)
	categories.GET("/slug/:slug", h.GetBySlug)
	categories.GET("/:id", h.GetByID)
	categories.GET("/:id/children", h.ListChildren)
	categories.PUT("/:id", h.Update)
	categories.DELETE("/:id", h.Delete)
}
