package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

// StatsUseCase обрабатывает бизнес-логику для статистики регионов
type StatsUseCase struct {
	regionRepo repository.RegionRepository
	statsRepo  repository.StatsRepository
	cacheRepo  repository.CacheRepository
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	regionRepo repository.RegionRepository,
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheCfg *config.CacheConfig,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		regionRepo: regionRepo,
		statsRepo:  statsRepo,
		cacheRepo:  cacheRepo,
		ttl:        cacheCfg.RegionStatsTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// GetRegionStats возвращает статистику региона, используя кеш когда возможно
func (uc *StatsUseCase) GetRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error) {
	if _, err := uuid.Parse(regionID); err != nil {
		return nil, errors.ErrRegionNotFound
	}

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetRegionStats(ctx, regionID)
	metrics.CacheLookup(metrics.KindRegionStats, err == nil && cached != nil)
	if err == nil && cached != nil {
		uc.logger.Debug("Region stats fetched from cache", zap.String("region_id", regionID))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get region stats from cache", zap.Error(err))
	}

	// 2. Считаем заново
	return uc.RefreshRegionStats(ctx, regionID)
}

// RefreshRegionStats принудительно пересчитывает статистику и обновляет кеш
func (uc *StatsUseCase) RefreshRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error) {
	region, err := uc.regionRepo.GetByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	counters, err := uc.statsRepo.GetCounters(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("get region counters: %w", err)
	}

	stats, err := domain.NewRegionStats(*region, *counters, uc.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("compute region stats: %w", err)
	}

	if err := uc.cacheRepo.SetRegionStats(ctx, stats, uc.ttl); err != nil {
		uc.logger.Warn("Failed to cache region stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return stats, nil
}

// ForgetRegionStats сбрасывает кеш удалённого региона вместе со списками
func (uc *StatsUseCase) ForgetRegionStats(ctx context.Context, regionID string) error {
	if err := uc.cacheRepo.InvalidateRegion(ctx, regionID); err != nil {
		return fmt.Errorf("forget region stats: %w", err)
	}
	return nil
}
