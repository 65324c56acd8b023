package route

import (
	"github.com/evandrarf/microlearn-be/internal/delivery/http/handler"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupScoringRoute(api *fiber.App, handler handler.ScoringHandler, m *middleware.Middleware) {
	router := api.Group("/scoring")
	{
		router.Post("/calculate", handler.Calculate)
		router.Post("/sessions", handler.CreateSession)
		router.Post("/sessions/:session_id/answers", handler.SubmitAnswer)
		router.Get("/sessions/:session_id", handler.GetSession)
		router.Get("/students/:student_id/results", handler.GetStudentResults)
		router.Get("/parameters", handler.GetParameters)
		router.Put("/parameters", m.AdminMiddleware(), handler.UpdateParameters)
	}
}
