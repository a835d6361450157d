package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/utils"
	"github.com/invotaxi/region-service/internal/usecase/dto"
)

// RegionService - операции над регионами, которые нужны обработчику
type RegionService interface {
	List(ctx context.Context, cityID string) ([]*domain.Region, error)
	Get(ctx context.Context, id string) (*domain.Region, error)
	Create(ctx context.Context, req dto.RegionRequest) (*domain.Region, error)
	Update(ctx context.Context, id string, req dto.RegionRequest) (*domain.Region, error)
	Delete(ctx context.Context, id string) error
	GeoJSON(ctx context.Context, id string) (*geojson.Feature, error)
}

// RegionHandler обрабатывает запросы /regions/
type RegionHandler struct {
	regionUC RegionService
	logger   *zap.Logger
}

// NewRegionHandler создает новый экземпляр RegionHandler
func NewRegionHandler(regionUC RegionService, logger *zap.Logger) *RegionHandler {
	return &RegionHandler{
		regionUC: regionUC,
		logger:   logger,
	}
}

// List godoc
// @Summary List regions
// @Description Список регионов обслуживания, опционально по городу
// @Tags Regions
// @Produce json
// @Param city_id query string false "ID города"
// @Success 200 {array} domain.Region
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/regions/ [get]
func (h *RegionHandler) List(c *fiber.Ctx) error {
	var q dto.RegionListQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	regions, err := h.regionUC.List(c.UserContext(), q.CityID)
	if err != nil {
		h.logger.Error("Failed to list regions", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, regions)
}

// Get godoc
// @Summary Get region
// @Tags Regions
// @Produce json
// @Param id path string true "ID региона"
// @Success 200 {object} domain.Region
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id}/ [get]
func (h *RegionHandler) Get(c *fiber.Ctx) error {
	region, err := h.regionUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, region)
}

// Create godoc
// @Summary Create region
// @Description Создаёт регион: точка с необязательным радиусом или полигон из 3+ вершин
// @Tags Regions
// @Accept json
// @Produce json
// @Param request body dto.RegionRequest true "Регион"
// @Success 201 {object} domain.Region
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/ [post]
func (h *RegionHandler) Create(c *fiber.Ctx) error {
	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid region body", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	region, err := h.regionUC.Create(c.UserContext(), req)
	if err != nil {
		h.logger.Warn("Failed to create region", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusCreated, region)
}

// Update godoc
// @Summary Update region
// @Description Заменяет название, город и границу региона целиком
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path string true "ID региона"
// @Param request body dto.RegionRequest true "Регион"
// @Success 200 {object} domain.Region
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id}/ [patch]
func (h *RegionHandler) Update(c *fiber.Ctx) error {
	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	region, err := h.regionUC.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		h.logger.Warn("Failed to update region",
			zap.String("region_id", c.Params("id")),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, region)
}

// Delete godoc
// @Summary Delete region
// @Tags Regions
// @Param id path string true "ID региона"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id}/ [delete]
func (h *RegionHandler) Delete(c *fiber.Ctx) error {
	if err := h.regionUC.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GeoJSON godoc
// @Summary Region boundary as GeoJSON
// @Tags Regions
// @Produce json
// @Param id path string true "ID региона"
// @Success 200 {object} map[string]interface{} "GeoJSON Feature"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id}/geojson/ [get]
func (h *RegionHandler) GeoJSON(c *fiber.Ctx) error {
	feature, err := h.regionUC.GeoJSON(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	data, err := feature.MarshalJSON()
	if err != nil {
		h.logger.Error("Failed to encode GeoJSON", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Status(fiber.StatusOK).Send(data)
}
