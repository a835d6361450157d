package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/repository/cache"
)

func getTestRedis(t *testing.T) *cache.Redis {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	require.NoError(t, client.FlushDB(ctx).Err())
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisFromClient(client, zap.NewNop())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "region:stats:abc", cache.RegionStatsKey("abc"))
	assert.Equal(t, "regions:list:all", cache.RegionListKey(""))
	assert.Equal(t, "regions:list:city-1", cache.RegionListKey("city-1"))
}

func TestCacheRepository_RegionStats(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	miss, err := repo.GetRegionStats(ctx, "region-1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	stats := &domain.RegionStats{RegionID: "region-1", Mode: domain.BoundaryModePolygon, VertexCount: 4, DriversCount: 7}
	require.NoError(t, repo.SetRegionStats(ctx, stats, time.Minute))

	got, err := repo.GetRegionStats(ctx, "region-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.DriversCount)
	assert.Equal(t, domain.BoundaryModePolygon, got.Mode)
}

func TestCacheRepository_InvalidateRegion(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	regions := []*domain.Region{{ID: "region-1", Title: "Центр"}}
	require.NoError(t, repo.SetRegionList(ctx, "", regions, time.Minute))
	require.NoError(t, repo.SetRegionList(ctx, "city-1", regions, time.Minute))
	require.NoError(t, repo.SetRegionStats(ctx, &domain.RegionStats{RegionID: "region-1"}, time.Minute))
	require.NoError(t, repo.SetRegionStats(ctx, &domain.RegionStats{RegionID: "region-2"}, time.Minute))

	list, err := repo.GetRegionList(ctx, "city-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.InvalidateRegion(ctx, "region-1"))

	list, err = repo.GetRegionList(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, list)
	list, err = repo.GetRegionList(ctx, "city-1")
	require.NoError(t, err)
	assert.Nil(t, list)

	stats, err := repo.GetRegionStats(ctx, "region-1")
	require.NoError(t, err)
	assert.Nil(t, stats)
	stats, err = repo.GetRegionStats(ctx, "region-2")
	require.NoError(t, err)
	assert.NotNil(t, stats, "other regions keep their stats")
}
