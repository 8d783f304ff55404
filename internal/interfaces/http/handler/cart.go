package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/tienda/backend/internal/application/cart"
	"github.com/tienda/backend/internal/interfaces/http/dto"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the shopping cart for authenticated users and
// anonymous sessions alike
type CartHandler struct {
	BaseHandler
	service *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *cartapp.Service) *CartHandler {
	return &CartHandler{service: service}
}

// owner resolves the cart owner: the authenticated user wins, otherwise
// the X-Session-ID header identifies an anonymous cart
func (h *CartHandler) owner(c *gin.Context) (cartapp.Owner, bool) {
	if userID, ok := middleware.GetUserID(c); ok {
		return cartapp.UserOwner(userID), true
	}
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		return cartapp.SessionOwner(sessionID), true
	}

	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
		http.StatusUnauthorized,
		"Authentication or an X-Session-ID header is required",
		map[string]string{"code": dto.ErrCodeUnauthorized},
	))
	return cartapp.Owner{}, false
}

// Get returns the owner's cart, creating an empty one on first touch
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	out, err := h.service.GetOrCreate(c.Request.Context(), owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// AddItem adds a product or custom design line, capturing the price at
// add time
func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.AddItem(c.Request.Context(), owner, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// UpdateQuantity changes a line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "item_id")
	if !ok {
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.UpdateQuantity(c.Request.Context(), owner, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "item_id")
	if !ok {
		return
	}

	out, err := h.service.RemoveItem(c.Request.Context(), owner, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Clear removes every line from the cart
func (h *CartHandler) Clear(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	out, err := h.service.Clear(c.Request.Context(), owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Merge folds the anonymous session cart into the authenticated user's
// cart after login
func (h *CartHandler) Merge(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest,
			"Missing X-Session-ID header",
			map[string]string{"code": dto.ErrCodeBadRequest},
		))
		return
	}

	out, err := h.service.MergeSessionCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// RegisterRoutes mounts the cart endpoints
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items/:item_id", h.UpdateQuantity)
	cart.DELETE("/items/:item_id", h.RemoveItem)
	cart.DELETE("", h.Clear)
	cart.POST("/merge", h.Merge)
}
