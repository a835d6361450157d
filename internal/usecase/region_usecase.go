package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/validator"
	"github.com/invotaxi/region-service/internal/usecase/dto"
)

// RegionUseCase - CRUD регионов обслуживания с кешем списков и событиями изменений
type RegionUseCase struct {
	regionRepo repository.RegionRepository
	cityRepo   repository.CityRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	listTTL    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewRegionUseCase создает новый экземпляр RegionUseCase
func NewRegionUseCase(
	regionRepo repository.RegionRepository,
	cityRepo repository.CityRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	cacheCfg *config.CacheConfig,
	logger *zap.Logger,
) *RegionUseCase {
	return &RegionUseCase{
		regionRepo: regionRepo,
		cityRepo:   cityRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		listTTL:    cacheCfg.RegionListTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// List возвращает регионы, используя кеш когда возможно
func (uc *RegionUseCase) List(ctx context.Context, cityID string) ([]*domain.Region, error) {
	if cityID != "" {
		if _, err := uuid.Parse(cityID); err != nil {
			return nil, errors.ErrInvalidRequest.WithMessage("city_id must be a UUID")
		}
	}

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetRegionList(ctx, cityID)
	metrics.CacheLookup(metrics.KindRegionList, err == nil && cached != nil)
	if err == nil && cached != nil {
		uc.logger.Debug("Region list fetched from cache", zap.String("city_id", cityID))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get region list from cache", zap.Error(err))
	}

	// 2. Получаем из БД
	regions, err := uc.regionRepo.List(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetRegionList(ctx, cityID, regions, uc.listTTL); err != nil {
		uc.logger.Warn("Failed to cache region list", zap.Error(err))
	}

	return regions, nil
}

// Get возвращает регион по ID
func (uc *RegionUseCase) Get(ctx context.Context, id string) (*domain.Region, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrRegionNotFound
	}
	return uc.regionRepo.GetByID(ctx, id)
}

// Create проверяет и сохраняет новый регион
func (uc *RegionUseCase) Create(ctx context.Context, req dto.RegionRequest) (*domain.Region, error) {
	region, err := uc.buildRegion(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := uc.regionRepo.Create(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("create region: %w", err)
	}

	uc.logger.Info("Region created",
		zap.String("region_id", created.ID),
		zap.String("city_id", created.CityID))

	uc.afterMutation(ctx, domain.RegionCreated, created.ID, created.CityID)
	return created, nil
}

// Update заменяет название, город и границу региона целиком
func (uc *RegionUseCase) Update(ctx context.Context, id string, req dto.RegionRequest) (*domain.Region, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrRegionNotFound
	}

	region, err := uc.buildRegion(ctx, req)
	if err != nil {
		return nil, err
	}
	region.ID = id

	updated, err := uc.regionRepo.Update(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("update region: %w", err)
	}

	uc.logger.Info("Region updated", zap.String("region_id", id))

	uc.afterMutation(ctx, domain.RegionUpdated, updated.ID, updated.CityID)
	return updated, nil
}

// Delete удаляет регион
func (uc *RegionUseCase) Delete(ctx context.Context, id string) error {
	region, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.regionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete region: %w", err)
	}

	uc.logger.Info("Region deleted", zap.String("region_id", id))

	uc.afterMutation(ctx, domain.RegionDeleted, id, region.CityID)
	return nil
}

// GeoJSON - граница региона как GeoJSON Feature
func (uc *RegionUseCase) GeoJSON(ctx context.Context, id string) (*geojson.Feature, error) {
	region, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := region.Boundary()
	if err != nil {
		return nil, err
	}

	f := b.GeoJSON()
	f.ID = region.ID
	f.Properties["title"] = region.Title
	f.Properties["city_id"] = region.CityID
	if region.CityTitle != "" {
		f.Properties["city_title"] = region.CityTitle
	}
	return f, nil
}

// buildRegion валидирует запрос и собирает регион: у полигона центр - центроид, радиус сбрасывается
func (uc *RegionUseCase) buildRegion(ctx context.Context, req dto.RegionRequest) (*domain.Region, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.ErrInvalidValue.
			WithMessage("title is required").
			WithDetails(map[string]interface{}{"field": "title"})
	}

	b, err := req.ToMutation().Boundary()
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.cityRepo.GetByID(ctx, req.CityID); err != nil {
		return nil, err
	}

	center, _ := b.Center()
	region := &domain.Region{
		Title:     title,
		CityID:    req.CityID,
		CenterLat: center.Lat,
		CenterLon: center.Lon,
	}

	switch b.Mode {
	case domain.BoundaryModePolygon:
		region.PolygonCoordinates = b.Polygon.Coordinates()
	case domain.BoundaryModePoint:
		region.ServiceRadiusMeters = b.Point.RadiusMeters
	}

	return region, nil
}

// afterMutation сбрасывает кеш и публикует событие; ошибки только логируются
func (uc *RegionUseCase) afterMutation(ctx context.Context, kind domain.RegionEventType, regionID, cityID string) {
	if err := uc.cacheRepo.InvalidateRegion(ctx, regionID); err != nil {
		uc.logger.Warn("Failed to invalidate region cache",
			zap.String("region_id", regionID),
			zap.Error(err))
	}

	event := domain.RegionEvent{
		Type:     kind,
		RegionID: regionID,
		CityID:   cityID,
		At:       uc.now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamRegionChanged, event); err != nil {
		uc.logger.Warn("Failed to publish region event",
			zap.String("region_id", regionID),
			zap.String("type", string(kind)),
			zap.Error(err))
	}
}
