package repository

import (
	"context"
	"time"

	"github.com/invotaxi/region-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; nil, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значения из кеша
	Delete(ctx context.Context, keys ...string) error

	// GetRegionStats получает статистику региона из кеша
	GetRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error)

	// SetRegionStats сохраняет статистику региона в кеше
	SetRegionStats(ctx context.Context, stats *domain.RegionStats, ttl time.Duration) error

	// GetRegionList получает закешированный список регионов
	GetRegionList(ctx context.Context, cityID string) ([]*domain.Region, error)

	// SetRegionList кеширует список регионов
	SetRegionList(ctx context.Context, cityID string, regions []*domain.Region, ttl time.Duration) error

	// InvalidateRegion сбрасывает списки регионов и статистику указанного региона
	InvalidateRegion(ctx context.Context, regionID string) error
}
