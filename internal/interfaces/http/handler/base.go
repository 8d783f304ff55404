package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/interfaces/http/dto"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the envelope helpers shared by all handlers
type BaseHandler struct{}

// currentUserID returns the authenticated user, writing a 401 envelope
// when the request is anonymous
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized,
			"Authentication required",
			map[string]string{"code": dto.ErrCodeUnauthorized},
		))
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter, writing a 400 envelope on failure
func (h *BaseHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest,
			"Invalid "+name+" parameter",
			map[string]string{name: "Must be a valid UUID"},
		))
		return uuid.Nil, false
	}
	return id, true
}

// Success writes a 200 success envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "ok", data))
}

// SuccessMessage writes a 200 success envelope with a custom message
func (h *BaseHandler) SuccessMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, message, data))
}

// Created writes a 201 success envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "created", data))
}

// NoContent writes an empty 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 envelope whose data is the paginated payload,
// with next and previous links derived from the request URL
func (h *BaseHandler) Paginated(c *gin.Context, items any, count int64, page, pageSize int) {
	payload := dto.NewPaginated(c.Request.URL, items, count, page, pageSize)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "ok", payload))
}

// BindError writes a 400 envelope for a request binding failure
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		http.StatusBadRequest,
		"Request validation failed",
		middleware.FormatValidationErrors(err),
	))
}

// HandleError maps domain errors onto the envelope, preserving the
// originating status code. Unknown error types become opaque 500s.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		resp := dto.NewDomainErrorResponse(domainErr.Code, domainErr.Message)
		c.JSON(resp.Code, resp)
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		http.StatusInternalServerError,
		"An unexpected error occurred",
		map[string]string{"code": dto.ErrCodeInternal},
	))
}

// Forbidden writes a 403 envelope
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, dto.NewErrorResponse(
		http.StatusForbidden,
		message,
		map[string]string{"code": dto.ErrCodeForbidden},
	))
}
