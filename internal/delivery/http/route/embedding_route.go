package route

import (
	"github.com/evandrarf/microlearn-be/internal/delivery/http/handler"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupEmbeddingRoute(api *fiber.App, handler handler.EmbeddingHandler, m *middleware.Middleware) {
	api.Post("/embeddings", handler.Embed)

	similarityRouter := api.Group("/similarity")
	{
		similarityRouter.Post("/", handler.Compare)
		similarityRouter.Post("/find", handler.FindSimilar)
	}

	api.Post("/search", handler.Search)
	api.Post("/clusters", handler.Cluster)

	documentRouter := api.Group("/documents")
	{
		documentRouter.Get("/", handler.ListDocuments)
		documentRouter.Post("/", m.AdminMiddleware(), handler.CreateDocument)
	}
}
