package handler

import (
	"github.com/gin-gonic/gin"

	geographyapp "github.com/tienda/backend/internal/application/geography"
)

// GeographyHandler serves the DANE geography reference data
type GeographyHandler struct {
	BaseHandler
	service *geographyapp.Service
}

// NewGeographyHandler creates a new GeographyHandler
func NewGeographyHandler(service *geographyapp.Service) *GeographyHandler {
	return &GeographyHandler{service: service}
}

// ListDepartments returns all departments
func (h *GeographyHandler) ListDepartments(c *gin.Context) {
	out, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetDepartment returns one department by DANE code
func (h *GeographyHandler) GetDepartment(c *gin.Context) {
	out, err := h.service.GetDepartment(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// ListMunicipalities returns the municipalities of a department
func (h *GeographyHandler) ListMunicipalities(c *gin.Context) {
	out, err := h.service.ListMunicipalities(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// GetMunicipality returns one municipality by DANE code
func (h *GeographyHandler) GetMunicipality(c *gin.Context) {
	out, err := h.service.GetMunicipality(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// ListNeighborhoods returns the neighborhoods of a municipality
func (h *GeographyHandler) ListNeighborhoods(c *gin.Context) {
	out, err := h.service.ListNeighborhoods(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// SeedDepartment upserts a department (back-office seeding)
func (h *GeographyHandler) SeedDepartment(c *gin.Context) {
	var req geographyapp.SeedDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.SaveDepartment(c.Request.Context(), req.Code, req.Name, req.PhonePrefix)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// SeedMunicipality upserts a municipality (back-office seeding)
func (h *GeographyHandler) SeedMunicipality(c *gin.Context) {
	var req geographyapp.SeedMunicipalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.SaveMunicipality(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// SeedNeighborhood creates a neighborhood (back-office seeding)
func (h *GeographyHandler) SeedNeighborhood(c *gin.Context) {
	var req geographyapp.SeedNeighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	out, err := h.service.SaveNeighborhood(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// RegisterRoutes mounts the geography endpoints
func (h *GeographyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	geo := rg.Group("/geography")
	geo.GET("/departments", h.ListDepartments)
	geo.GET("/departments/:code", h.GetDepartment)
	geo.GET("/departments/:code/municipalities", h.ListMunicipalities)
	geo.GET("/municipalities/:code", h.GetMunicipality)
	geo.GET("/municipalities/:code/neighborhoods", h.ListNeighborhoods)

	geo.POST("/departments", h.SeedDepartment)
	geo.POST("/municipalities", h.SeedMunicipality)
	geo.POST("/neighborhoods", h.SeedNeighborhood)
}
