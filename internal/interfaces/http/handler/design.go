package handler

import (
	"github.com/gin-gonic/gin"

	designapp "github.com/tienda/backend/internal/application/design"
)

// DesignHandler serves a user's custom designs
type DesignHandler struct {
	BaseHandler
	service *designapp.Service
}

// NewDesignHandler creates a new DesignHandler
func NewDesignHandler(service *designapp.Service) *DesignHandler {
	return &DesignHandler{service: service}
}

// Create saves a custom design on a customizable base product
func (h *DesignHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req designapp.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// List returns the user's designs, newest first
func (h *DesignHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filter := designapp.DesignListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, out.Items, out.Total, out.Page, out.PageSize)
}

// GetByID returns one of the user's designs
func (h *DesignHandler) GetByID(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	designID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetByID(c.Request.Context(), userID, designID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Update reworks an existing design
func (h *DesignHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	designID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req designapp.UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.Update(c.Request.Context(), userID, designID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete discards one of the user's designs
func (h *DesignHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	designID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, designID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InitiateUpload returns a presigned URL for the design image
func (h *DesignHandler) InitiateUpload(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req designapp.InitiateDesignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.InitiateUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// RegisterRoutes mounts the design endpoints
func (h *DesignHandler) RegisterRoutes(rg *gin.RouterGroup) {
	designs := rg.Group("/designs")
	designs.POST("", h.Create)
	designs.GET("", h.List)
	designs.GET("/:id", h.GetByID)
	designs.PUT("/:id", h.Update)
	designs.DELETE("/:id", h.Delete)
	designs.POST("/uploads", h.InitiateUpload)
}
