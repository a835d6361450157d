package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/delivery/http/handler"
	"github.com/invotaxi/region-service/internal/delivery/http/middleware"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	regionHandler *handler.RegionHandler
	cityHandler   *handler.CityHandler
	statsHandler  *handler.StatsHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	regionHandler *handler.RegionHandler,
	cityHandler *handler.CityHandler,
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "InvoTaxi Region Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		regionHandler: regionHandler,
		cityHandler:   cityHandler,
		statsHandler:  statsHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber-приложение, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.config.Metrics.Enabled {
		s.app.Use(middleware.Metrics())
	}
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.config.Metrics.Enabled {
		s.app.Get(s.config.Metrics.Path, adaptor.HTTPHandler(metrics.Handler()))
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthHandler.Health)

	// Cities - до /regions/:id, иначе "cities" попадёт в параметр
	cities := api.Group("/regions/cities")
	cities.Get("/", s.cityHandler.List)
	cities.Post("/", s.cityHandler.Create)
	cities.Patch("/:id", s.cityHandler.Update)
	cities.Delete("/:id", s.cityHandler.Delete)

	// Regions
	regions := api.Group("/regions")
	regions.Get("/", s.regionHandler.List)
	regions.Post("/", s.regionHandler.Create)
	regions.Get("/:id", s.regionHandler.Get)
	regions.Patch("/:id", s.regionHandler.Update)
	regions.Delete("/:id", s.regionHandler.Delete)
	regions.Get("/:id/stats", s.statsHandler.GetRegionStats)
	regions.Get("/:id/geojson", s.regionHandler.GeoJSON)

	s.app.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.New("NOT_FOUND", "Route not found", fiber.StatusNotFound))
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами: AppError уходит как есть,
// ошибки fiber (тело запроса, 405) - с их статусом, остальное - 500 без текста причины
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if _, ok := errors.As(err); ok {
			return utils.SendError(c, err)
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		if code >= fiber.StatusInternalServerError {
			return utils.SendError(c, err)
		}
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(fe.Message).WithDetails(map[string]interface{}{
			"status": code,
		}).WithStatus(code))
	}
}
