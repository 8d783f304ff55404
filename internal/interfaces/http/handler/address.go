package handler

import (
	"github.com/gin-gonic/gin"

	addressapp "github.com/tienda/backend/internal/application/address"
)

// AddressHandler serves the authenticated user's address book
type AddressHandler struct {
	BaseHandler
	service *addressapp.Service
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service *addressapp.Service) *AddressHandler {
	return &AddressHandler{service: service}
}

// Create adds an address to the user's address book
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req addressapp.CreateAddressRequest
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

// List returns the user's addresses, primary first
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	out, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetByID returns one address owned by the user
func (h *AddressHandler) GetByID(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetByID(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// UpdateCoordinates sets geocoding data on an address; trusted sources
// auto-verify it
func (h *AddressHandler) UpdateCoordinates(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req addressapp.UpdateCoordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.UpdateCoordinates(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// SetPrimary promotes an address, demoting the previous primary in the
// same transaction
func (h *AddressHandler) SetPrimary(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.SetPrimary(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete removes an address from the address book
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes mounts the address endpoints
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	addresses.POST("", h.Create)
	addresses.GET("", h.List)
	addresses.GET("/:id", h.GetByID)
	addresses.PUT("/:id/coordinates", h.UpdateCoordinates)
	addresses.POST("/:id/set-primary", h.SetPrimary)
	addresses.DELETE("/:id", h.Delete)
}
