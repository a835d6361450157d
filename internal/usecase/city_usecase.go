package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/validator"
	"github.com/invotaxi/region-service/internal/usecase/dto"
)

// CityUseCase - справочник городов
type CityUseCase struct {
	cityRepo  repository.CityRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewCityUseCase создает новый экземпляр CityUseCase
func NewCityUseCase(
	cityRepo repository.CityRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *CityUseCase {
	return &CityUseCase{
		cityRepo:  cityRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

func (uc *CityUseCase) List(ctx context.Context) ([]*domain.City, error) {
	cities, err := uc.cityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (uc *CityUseCase) Create(ctx context.Context, req dto.CityRequest) (*domain.City, error) {
	city, err := buildCity(req)
	if err != nil {
		return nil, err
	}

	created, err := uc.cityRepo.Create(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}

	uc.logger.Info("City created",
		zap.String("city_id", created.ID),
		zap.String("title", created.Title))
	return created, nil
}

// Update меняет город; списки регионов содержат city_title, поэтому кеш списков сбрасывается
func (uc *CityUseCase) Update(ctx context.Context, id string, req dto.CityRequest) (*domain.City, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrCityNotFound
	}

	city, err := buildCity(req)
	if err != nil {
		return nil, err
	}
	city.ID = id

	updated, err := uc.cityRepo.Update(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}

	uc.invalidateLists(ctx)
	uc.logger.Info("City updated", zap.String("city_id", id))
	return updated, nil
}

// Delete удаляет город без регионов; иначе CITY_IN_USE
func (uc *CityUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrCityNotFound
	}

	if err := uc.cityRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}

	uc.invalidateLists(ctx)
	uc.logger.Info("City deleted", zap.String("city_id", id))
	return nil
}

func (uc *CityUseCase) invalidateLists(ctx context.Context) {
	if err := uc.cacheRepo.InvalidateRegion(ctx, ""); err != nil {
		uc.logger.Warn("Failed to invalidate region lists", zap.Error(err))
	}
}

func buildCity(req dto.CityRequest) (*domain.City, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.ErrInvalidValue.
			WithMessage("title is required").
			WithDetails(map[string]interface{}{"field": "title"})
	}

	return &domain.City{
		Title:     title,
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
	}, nil
}
