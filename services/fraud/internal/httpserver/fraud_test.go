package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musicclouds/platform/services/fraud/internal/models"
	"github.com/musicclouds/platform/services/fraud/internal/repo"
	"github.com/musicclouds/platform/services/fraud/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FraudCheckHistory{}))

	e := echo.New()
	Register(e, &FraudHTTP{Svc: &service.FraudService{Repo: repo.GormRepo{DB: db}}})
	return e
}

func TestCheck_ReturnsNotFraudster(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fraud-check/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsFraudster bool `json:"isFraudster"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsFraudster)
}

func TestCheck_InvalidUserID(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fraud-check/not-a-number", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
