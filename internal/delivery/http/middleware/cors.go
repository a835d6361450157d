package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - доступ к API регионов из админки; origins берётся из CORS_ALLOW_ORIGINS
func CORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: origins != "" && origins != "*",
		MaxAge:           600,
	})
}
