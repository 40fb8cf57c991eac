package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, handler *HealthHandler, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	return response
}

func TestHealthCheck(t *testing.T) {
	t.Run("no dependencies configured", func(t *testing.T) {
		response := getHealth(t, NewHealthHandler("test-service", "1.0.0", nil, nil), "/health")
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test-service", response.Service)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "disabled", response.DB)
		assert.Equal(t, "disabled", response.Redis)
	})

	t.Run("all dependencies up", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		response := getHealth(t, NewHealthHandler("test-service", "1.0.0", db, rdb), "/healthz")
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "up", response.DB)
		assert.Equal(t, "up", response.Redis)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down degrades status", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		response := getHealth(t, NewHealthHandler("test-service", "1.0.0", db, nil), "/health")
		assert.Equal(t, "degraded", response.Status)
		assert.Equal(t, "down", response.DB)
	})

	t.Run("redis down degrades status", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer rdb.Close()
		mr.Close()

		response := getHealth(t, NewHealthHandler("test-service", "1.0.0", nil, rdb), "/health")
		assert.Equal(t, "degraded", response.Status)
		assert.Equal(t, "down", response.Redis)
	})
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	handler := NewHealthHandler("test-service", "1.0.0", nil, nil)
	handler.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
