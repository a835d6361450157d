package repository

import (
	"context"

	"github.com/invotaxi/region-service/internal/domain"
)

// StatsRepository - счётчики водителей и заказов по региону
type StatsRepository interface {
	// GetCounters возвращает агрегаты по региону
	GetCounters(ctx context.Context, regionID string) (*domain.Counters, error)
}
