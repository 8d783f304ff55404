package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/tienda/backend/internal/application/order"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves order checkout and the order lifecycle
type OrderHandler struct {
	BaseHandler
	service *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *orderapp.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// actor is the identity recorded in the status history for back-office
// transitions
func (h *OrderHandler) actor(c *gin.Context) string {
	if email := middleware.GetJWTEmail(c); email != "" {
		return email
	}
	return middleware.GetJWTUserID(c)
}

// Create places an order from explicit items, snapshotting prices
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	out, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// List returns a page of the user's orders, optionally filtered by status
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filter := orderapp.OrderListFilter{Page: 1, PageSize: 20}
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

// GetByID returns one of the user's orders with items and history
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetByID(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetByNumber returns one of the user's orders by order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	out, err := h.service.GetByOrderNumber(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Pay marks the user's pending order as paid
func (h *OrderHandler) Pay(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.Pay(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Cancel cancels the user's order while the lifecycle still allows it
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req orderapp.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	out, err := h.service.Cancel(c.Request.Context(), userID, orderID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Process moves a paid order into fulfilment
func (h *OrderHandler) Process(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.StartProcessing(c.Request.Context(), h.actor(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Ship marks an order as handed to the carrier
func (h *OrderHandler) Ship(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.Ship(c.Request.Context(), h.actor(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Deliver marks a shipped order as delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.Deliver(c.Request.Context(), h.actor(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Refund refunds a paid or delivered order
func (h *OrderHandler) Refund(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req orderapp.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	out, err := h.service.Refund(c.Request.Context(), h.actor(c), orderID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// RegisterRoutes mounts the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.GET("/number/:number", h.GetByNumber)
	orders.POST("/:id/pay", h.Pay)
	orders.POST("/:id/cancel", h.Cancel)
	orders.POST("/:id/process", h.Process)
	orders.POST("/:id/ship", h.Ship)
	orders.POST("/:id/deliver", h.Deliver)
	orders.POST("/:id/refund", h.Refund)
}
