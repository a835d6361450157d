package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
)

const (
	regionStatsKeyPrefix = "region:stats:"
	regionListKeyPrefix  = "regions:list:"
	regionListAllKey     = regionListKeyPrefix + "all"
	scanBatch            = 100
)

// RegionStatsKey - ключ статистики региона
func RegionStatsKey(regionID string) string {
	return regionStatsKeyPrefix + regionID
}

// RegionListKey - ключ списка регионов города; пустой cityID - все регионы
func RegionListKey(cityID string) string {
	if cityID == "" {
		return regionListAllKey
	}
	return regionListKeyPrefix + cityID
}

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.Strings("keys", keys))
	return nil
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}

// GetRegionStats получает статистику региона из кеша
func (r *cacheRepository) GetRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error) {
	var stats domain.RegionStats
	ok, err := r.getJSON(ctx, RegionStatsKey(regionID), &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SetRegionStats сохраняет статистику региона в кеш
func (r *cacheRepository) SetRegionStats(ctx context.Context, stats *domain.RegionStats, ttl time.Duration) error {
	return r.setJSON(ctx, RegionStatsKey(stats.RegionID), stats, ttl)
}

func (r *cacheRepository) GetRegionList(ctx context.Context, cityID string) ([]*domain.Region, error) {
	var regions []*domain.Region
	ok, err := r.getJSON(ctx, RegionListKey(cityID), &regions)
	if err != nil || !ok {
		return nil, err
	}
	return regions, nil
}

func (r *cacheRepository) SetRegionList(ctx context.Context, cityID string, regions []*domain.Region, ttl time.Duration) error {
	return r.setJSON(ctx, RegionListKey(cityID), regions, ttl)
}

// InvalidateRegion удаляет статистику региона и все закешированные списки
func (r *cacheRepository) InvalidateRegion(ctx context.Context, regionID string) error {
	keys := []string{}
	if regionID != "" {
		keys = append(keys, RegionStatsKey(regionID))
	}

	iter := r.client.Scan(ctx, 0, regionListKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan region list keys", zap.Error(err))
		return fmt.Errorf("cache scan error: %w", err)
	}

	return r.Delete(ctx, keys...)
}
