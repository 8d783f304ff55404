package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geographyapp "github.com/tienda/backend/internal/application/geography"
	"github.com/tienda/backend/internal/domain/geography"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/interfaces/http/dto"
)

type stubDepartmentRepo struct {
	departments map[string]*geography.Department
	saved       []*geography.Department
}

func (r *stubDepartmentRepo) FindByCode(ctx context.Context, code string) (*geography.Department, error) {
	if d, ok := r.departments[code]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubDepartmentRepo) FindAll(ctx context.Context) ([]geography.Department, error) {
	out := make([]geography.Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDepartmentRepo) Save(ctx context.Context, department *geography.Department) error {
	r.saved = append(r.saved, department)
	return nil
}

type stubMunicipalityRepo struct {
	municipalities map[string]*geography.Municipality
}

func (r *stubMunicipalityRepo) FindByCode(ctx context.Context, code string) (*geography.Municipality, error) {
	if m, ok := r.municipalities[code]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubMunicipalityRepo) FindByDepartment(ctx context.Context, departmentCode string) ([]geography.Municipality, error) {
	var out []geography.Municipality
	for _, m := range r.municipalities {
		if m.DepartmentCode == departmentCode {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMunicipalityRepo) Save(ctx context.Context, municipality *geography.Municipality) error {
	r.municipalities[municipality.Code] = municipality
	return nil
}

type stubNeighborhoodRepo struct{}

func (stubNeighborhoodRepo) FindByID(ctx context.Context, id uuid.UUID) (*geography.Neighborhood, error) {
	return nil, shared.ErrNotFound
}

func (stubNeighborhoodRepo) FindByMunicipality(ctx context.Context, municipalityCode string) ([]geography.Neighborhood, error) {
	return nil, nil
}

func (stubNeighborhoodRepo) Save(ctx context.Context, neighborhood *geography.Neighborhood) error {
	return nil
}

func newGeographyTestRouter(t *testing.T) (*gin.Engine, *stubDepartmentRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	antioquia, err := geography.NewDepartment("05", "Antioquia")
	require.NoError(t, err)
	departments := &stubDepartmentRepo{departments: map[string]*geography.Department{"05": antioquia}}

	medellin, err := geography.NewMunicipality("05001", "05", "Medellín")
	require.NoError(t, err)
	municipalities := &stubMunicipalityRepo{municipalities: map[string]*geography.Municipality{"05001": medellin}}

	service := geographyapp.NewService(departments, municipalities, stubNeighborhoodRepo{})
	h := NewGeographyHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, departments
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGeographyHandler(t *testing.T) {
	t.Run("list departments", func(t *testing.T) {
		engine, _ := newGeographyTestRouter(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/geography/departments", nil))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.StatusSuccess, resp.Status)

		items, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
	})

	t.Run("get unknown department returns enveloped 404", func(t *testing.T) {
		engine, _ := newGeographyTestRouter(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/geography/departments/99", nil))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.StatusError, resp.Status)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("malformed DANE code returns 400", func(t *testing.T) {
		engine, _ := newGeographyTestRouter(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/geography/departments/ABC", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list municipalities of department", func(t *testing.T) {
		engine, _ := newGeographyTestRouter(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/geography/departments/05/municipalities", nil))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		items, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
	})

	t.Run("seed department", func(t *testing.T) {
		engine, departments := newGeographyTestRouter(t)

		body, err := json.Marshal(gin.H{"code": "11", "name": "Bogotá D.C.", "phone_prefix": "601"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/geography/departments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, departments.saved, 1)
		assert.Equal(t, "11", departments.saved[0].Code)
	})

	t.Run("seed department without name fails validation", func(t *testing.T) {
		engine, departments := newGeographyTestRouter(t)

		body, err := json.Marshal(gin.H{"code": "11"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/geography/departments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.StatusError, resp.Status)
		assert.Empty(t, departments.saved)
	})
}
