package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/landgrid/internal/districts"
	apierrors "github.com/stwalsh4118/landgrid/internal/errors"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/logger"
	"github.com/stwalsh4118/landgrid/internal/middleware"
	"github.com/stwalsh4118/landgrid/internal/models"
	"github.com/stwalsh4118/landgrid/internal/services"
	"github.com/stwalsh4118/landgrid/internal/world"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockClaimRepository is a mock implementation of ParcelClaimRepository for testing
type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindByParcelID(ctx context.Context, parcelID int) (*models.ParcelClaim, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParcelClaim), args.Error(1)
}

func (m *MockClaimRepository) FindByParcelIDs(ctx context.Context, parcelIDs []int) ([]models.ParcelClaim, error) {
	args := m.Called(ctx, parcelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParcelClaim), args.Error(1)
}

func (m *MockClaimRepository) Upsert(ctx context.Context, claim *models.ParcelClaim) error {
	return m.Called(ctx, claim).Error(0)
}

// fakePinger answers Ping with a fixed error.
type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

var errPingFailed = errors.New("connection refused")

// setupTestRouter wires the full API over the default world, a mock claim
// repository and a pinger returning pingErr.
func setupTestRouter(t *testing.T, repo *MockClaimRepository, pingErr error) *gin.Engine {
	t.Helper()

	log := logger.New("test")
	w, err := services.NewWorld(world.DefaultGrid(), districts.Canonical(), land.DefaultPricing(), 100)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	RegisterRoutes(router,
		NewHealthHandler(fakePinger{err: pingErr}, "test", w.Grid, w.Districts.Len()),
		NewParcelHandler(services.NewParcelService(w, repo, log), w.BasePrice),
		NewDistrictHandler(services.NewDistrictService(w.Districts, log)),
	)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorDetail {
	t.Helper()
	return decode[apierrors.ErrorResponse](t, w).Error
}
