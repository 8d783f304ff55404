package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentapp "github.com/tienda/backend/internal/application/payment"
	"github.com/tienda/backend/internal/interfaces/http/dto"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the raw
// notification body, keyed with the gateway events secret.
const signatureHeader = "X-Event-Signature"

// PaymentHandler serves gateway payment records and the gateway
// notification webhook
type PaymentHandler struct {
	BaseHandler
	service      *paymentapp.Service
	eventsSecret string
}

// NewPaymentHandler creates a new PaymentHandler. eventsSecret signs
// the gateway notification webhook; notifications are rejected when it
// is empty or the signature does not match.
func NewPaymentHandler(service *paymentapp.Service, eventsSecret string) *PaymentHandler {
	return &PaymentHandler{service: service, eventsSecret: eventsSecret}
}

// RefundPaymentRequest carries the gateway's refund acknowledgement
type RefundPaymentRequest struct {
	GatewayResponse map[string]any `json:"gateway_response"`
}

// Create records a payment attempt against one of the user's pending
// orders; the amount always comes from the order, never the client
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req paymentapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// Notify ingests a normalized gateway notification. The route is outside
// authentication: gateways call it directly, so the body is authenticated
// with an HMAC signature instead of a JWT.
func (h *PaymentHandler) Notify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if !h.validEventSignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized,
			"Invalid notification signature",
			map[string]string{"code": dto.ErrCodeUnauthorized},
		))
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	var notification paymentapp.GatewayNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.HandleNotification(c.Request.Context(), &notification)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func (h *PaymentHandler) validEventSignature(body []byte, signature string) bool {
	if h.eventsSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.eventsSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GetByID returns one payment on an order the user owns
func (h *PaymentHandler) GetByID(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetByID(c.Request.Context(), userID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// ListByOrder returns the payment attempts recorded against an order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.ListByOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Refund marks an approved payment as refunded (back-office)
func (h *PaymentHandler) Refund(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}
	paymentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req RefundPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	out, err := h.service.Refund(c.Request.Context(), paymentID, req.GatewayResponse)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// RegisterRoutes mounts the payment endpoints
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.POST("", h.Create)
	payments.POST("/notifications", h.Notify)
	payments.GET("/:id", h.GetByID)
	payments.POST("/:id/refund", h.Refund)

	rg.GET("/orders/:id/payments", h.ListByOrder)
}
