package repository

import (
	"context"

	"github.com/invotaxi/region-service/internal/domain"
)

// RegionRepository определяет методы хранения регионов обслуживания
type RegionRepository interface {
	// List возвращает регионы; cityID != "" фильтрует по городу
	List(ctx context.Context, cityID string) ([]*domain.Region, error)

	// GetByID возвращает регион по ID или errors.ErrRegionNotFound
	GetByID(ctx context.Context, id string) (*domain.Region, error)

	// Create сохраняет новый регион и возвращает его с ID и метками времени
	Create(ctx context.Context, region *domain.Region) (*domain.Region, error)

	// Update заменяет название, город и границу региона
	Update(ctx context.Context, region *domain.Region) (*domain.Region, error)

	// Delete удаляет регион
	Delete(ctx context.Context, id string) error
}

// CityRepository определяет методы хранения городов
type CityRepository interface {
	List(ctx context.Context) ([]*domain.City, error)
	GetByID(ctx context.Context, id string) (*domain.City, error)
	Create(ctx context.Context, city *domain.City) (*domain.City, error)
	Update(ctx context.Context, city *domain.City) (*domain.City, error)
	Delete(ctx context.Context, id string) error
}
