package repository

import (
	"context"

	"github.com/invotaxi/region-service/internal/domain"
)

// RegionAPI - внешний REST API регионов, которым пользуется форма
type RegionAPI interface {
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	CreateRegion(ctx context.Context, m domain.RegionMutation) (*domain.Region, error)
	UpdateRegion(ctx context.Context, id string, m domain.RegionMutation) (*domain.Region, error)
	DeleteRegion(ctx context.Context, id string) error
	GetRegionStats(ctx context.Context, id string) (*domain.RegionStats, error)

	ListCities(ctx context.Context) ([]*domain.City, error)
	CreateCity(ctx context.Context, m domain.CityMutation) (*domain.City, error)
	UpdateCity(ctx context.Context, id string, m domain.CityMutation) (*domain.City, error)
	DeleteCity(ctx context.Context, id string) error
}
