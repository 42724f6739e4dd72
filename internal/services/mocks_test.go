package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/landgrid/internal/districts"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/models"
	"github.com/stwalsh4118/landgrid/internal/world"
)

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

// defaultWorld is the 40x40 grid with the canonical districts and default pricing at base 100.
func defaultWorld() World {
	return World{
		Grid:      world.DefaultGrid(),
		Districts: districts.Canonical(),
		Pricing:   land.DefaultPricing(),
		BasePrice: 100,
	}
}
