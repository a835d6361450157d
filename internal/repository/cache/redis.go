package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
)

const (
	clientName     = "region-service"
	connectTimeout = 5 * time.Second
)

// Redis - соединение, общее для кэша регионов и потока событий stream:region:changed
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))

	return &Redis{client: client, addr: addr, logger: logger}, nil
}

// NewRedisFromClient оборачивает готовый клиент, например в тестах
func NewRedisFromClient(client *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{client: client, addr: client.Options().Addr, logger: logger}
}

func (r *Redis) Close() error {
	stats := r.client.PoolStats()
	r.logger.Info("Closing Redis connection",
		zap.String("addr", r.addr),
		zap.Uint32("pool_hits", stats.Hits),
		zap.Uint32("pool_misses", stats.Misses),
		zap.Uint32("pool_timeouts", stats.Timeouts))
	return r.client.Close()
}

// Health - PING; ошибка содержит адрес, чтобы в /health было видно, какой Redis недоступен
func (r *Redis) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
