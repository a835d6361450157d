package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/usecase"
)

func newStatsUseCase() (*usecase.StatsUseCase, *MockRegionRepository, *MockStatsRepository, *MockCacheRepository) {
	regions := &MockRegionRepository{}
	stats := &MockStatsRepository{}
	cache := &MockCacheRepository{}
	cfg := &config.CacheConfig{RegionStatsTTL: time.Minute}
	return usecase.NewStatsUseCase(regions, stats, cache, cfg, zap.NewNop()), regions, stats, cache
}

func TestStatsUseCase_GetRegionStats_CacheHit(t *testing.T) {
	ctx := context.Background()
	uc, regions, _, cache := newStatsUseCase()

	cached := &domain.RegionStats{RegionID: testRegionID, DriversCount: 3}
	cache.On("GetRegionStats", ctx, testRegionID).Return(cached, nil)

	stats, err := uc.GetRegionStats(ctx, testRegionID)

	require.NoError(t, err)
	assert.Same(t, cached, stats)
	regions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestStatsUseCase_GetRegionStats_ComputesOnMiss(t *testing.T) {
	ctx := context.Background()
	uc, regions, statsRepo, cache := newStatsUseCase()

	cache.On("GetRegionStats", ctx, testRegionID).Return(nil, nil)
	regions.On("GetByID", ctx, testRegionID).Return(&domain.Region{
		ID:                 testRegionID,
		PolygonCoordinates: [][]float64{{0, 0}, {0, 0.01}, {0.01, 0.01}, {0.01, 0}},
	}, nil)
	statsRepo.On("GetCounters", ctx, testRegionID).Return(&domain.Counters{
		DriversCount: 5, ActiveDriversCount: 2, OrdersCount: 9, OrdersToday: 1,
	}, nil)
	cache.On("SetRegionStats", ctx, mock.AnythingOfType("*domain.RegionStats"), time.Minute).Return(nil)

	stats, err := uc.GetRegionStats(ctx, testRegionID)

	require.NoError(t, err)
	assert.Equal(t, domain.BoundaryModePolygon, stats.Mode)
	assert.Equal(t, 4, stats.VertexCount)
	assert.Greater(t, stats.AreaSqKm, 1.0)
	assert.Greater(t, stats.PerimeterKm, 4.0)
	assert.Equal(t, 5, stats.DriversCount)
	assert.Equal(t, 1, stats.OrdersToday)
	assert.False(t, stats.ComputedAt.IsZero())
	cache.AssertExpectations(t)
}

func TestStatsUseCase_GetRegionStats_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, regions, _, cache := newStatsUseCase()

	_, err := uc.GetRegionStats(ctx, "nope")
	assert.True(t, errors.Is(err, errors.ErrRegionNotFound))

	cache.On("GetRegionStats", ctx, testRegionID).Return(nil, errors.ErrCacheError)
	regions.On("GetByID", ctx, testRegionID).Return(nil, errors.ErrRegionNotFound)

	_, err = uc.GetRegionStats(ctx, testRegionID)
	assert.True(t, errors.Is(err, errors.ErrRegionNotFound))
}

func TestStatsUseCase_ForgetRegionStats(t *testing.T) {
	ctx := context.Background()
	uc, _, _, cache := newStatsUseCase()
	cache.On("InvalidateRegion", ctx, testRegionID).Return(nil)

	require.NoError(t, uc.ForgetRegionStats(ctx, testRegionID))
	cache.AssertExpectations(t)
}
