package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tienda/backend/internal/infrastructure/persistence"
	"github.com/tienda/backend/internal/interfaces/http/dto"
)

func newSystemTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	h := NewSystemHandler(&persistence.Database{DB: gormDB})
	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, mock
}

func TestSystemHandler(t *testing.T) {
	t.Run("health reports up", func(t *testing.T) {
		engine, _ := newSystemTestRouter(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.StatusSuccess, resp.Status)
	})

	t.Run("ready pings the database", func(t *testing.T) {
		engine, mock := newSystemTestRouter(t)
		mock.ExpectPing()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ready fails when the database is down", func(t *testing.T) {
		engine, mock := newSystemTestRouter(t)
		mock.ExpectPing().WillReturnError(assert.AnError)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil))

		resp := decodeResponse(t, w)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.StatusError, resp.Status)
	})
}
