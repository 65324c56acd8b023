package route

import (
	"github.com/evandrarf/microlearn-be/internal/delivery/http/handler"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api              *fiber.App
	Middleware       *middleware.Middleware
	ScoringHandler   handler.ScoringHandler
	EmbeddingHandler handler.EmbeddingHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	c.Api.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	SetupScoringRoute(c.Api, c.ScoringHandler, c.Middleware)
	SetupEmbeddingRoute(c.Api, c.EmbeddingHandler, c.Middleware)
}
