package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/utils"
	"github.com/invotaxi/region-service/internal/usecase/dto"
)

// CityService - операции над городами
type CityService interface {
	List(ctx context.Context) ([]*domain.City, error)
	Create(ctx context.Context, req dto.CityRequest) (*domain.City, error)
	Update(ctx context.Context, id string, req dto.CityRequest) (*domain.City, error)
	Delete(ctx context.Context, id string) error
}

// CityHandler обрабатывает запросы /regions/cities/
type CityHandler struct {
	cityUC CityService
	logger *zap.Logger
}

// NewCityHandler создает новый экземпляр CityHandler
func NewCityHandler(cityUC CityService, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityUC: cityUC,
		logger: logger,
	}
}

// List godoc
// @Summary List cities
// @Tags Cities
// @Produce json
// @Success 200 {array} domain.City
// @Router /api/v1/regions/cities/ [get]
func (h *CityHandler) List(c *fiber.Ctx) error {
	cities, err := h.cityUC.List(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list cities", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, cities)
}

// Create godoc
// @Summary Create city
// @Tags Cities
// @Accept json
// @Produce json
// @Param request body dto.CityRequest true "Город"
// @Success 201 {object} domain.City
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/regions/cities/ [post]
func (h *CityHandler) Create(c *fiber.Ctx) error {
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	city, err := h.cityUC.Create(c.UserContext(), req)
	if err != nil {
		h.logger.Warn("Failed to create city", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, city)
}

// Update godoc
// @Summary Update city
// @Tags Cities
// @Accept json
// @Produce json
// @Param id path string true "ID города"
// @Param request body dto.CityRequest true "Город"
// @Success 200 {object} domain.City
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/cities/{id}/ [patch]
func (h *CityHandler) Update(c *fiber.Ctx) error {
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	city, err := h.cityUC.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, city)
}

// Delete godoc
// @Summary Delete city
// @Description Город с регионами не удаляется (CITY_IN_USE)
// @Tags Cities
// @Param id path string true "ID города"
// @Success 204
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/regions/cities/{id}/ [delete]
func (h *CityHandler) Delete(c *fiber.Ctx) error {
	if err := h.cityUC.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
