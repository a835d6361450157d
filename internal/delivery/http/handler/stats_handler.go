package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/utils"
)

// StatsService - статистика региона
type StatsService interface {
	GetRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error)
}

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC StatsService
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetRegionStats godoc
// @Summary Get region statistics
// @Description Число вершин, площадь, периметр, радиус, водители и заказы региона
// @Tags Statistics
// @Produce json
// @Param id path string true "ID региона"
// @Success 200 {object} domain.RegionStats
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id}/stats/ [get]
func (h *StatsHandler) GetRegionStats(c *fiber.Ctx) error {
	regionID := c.Params("id")

	h.logger.Debug("Handling region stats request", zap.String("region_id", regionID))

	stats, err := h.statsUC.GetRegionStats(c.UserContext(), regionID)
	if err != nil {
		h.logger.Error("Failed to get region stats",
			zap.String("region_id", regionID),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, stats)
}
