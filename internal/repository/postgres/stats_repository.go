package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetCounters считает водителей и заказы региона. Заказы "за сегодня" - с начала текущих суток по времени БД.
func (r *statsRepository) GetCounters(ctx context.Context, regionID string) (*domain.Counters, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM drivers WHERE region_id = $1::uuid) AS drivers_count,
			(SELECT COUNT(*) FROM drivers WHERE region_id = $1::uuid AND is_active) AS active_drivers_count,
			(SELECT COUNT(*) FROM orders WHERE region_id = $1::uuid) AS orders_count,
			(SELECT COUNT(*) FROM orders
				WHERE region_id = $1::uuid AND created_at >= date_trunc('day', NOW())) AS orders_today
	`

	var counters domain.Counters
	if err := r.db.GetContext(ctx, &counters, query, regionID); err != nil {
		r.logger.Error("failed to get region counters", zap.String("region_id", regionID), zap.Error(err))
		return nil, mapError(err, errors.ErrRegionNotFound, nil)
	}
	return &counters, nil
}
