package middleware

import (
	"crypto/subtle"

	"github.com/evandrarf/microlearn-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminMiddleware guards write endpoints with api.admin_token. An empty token disables the check.
func (m *Middleware) AdminMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if m == nil || m.Config == nil {
			return ctx.Next()
		}
		token := m.Config.GetString("api.admin_token")
		if token == "" {
			return ctx.Next()
		}

		got := ctx.Get(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			if m.Log != nil {
				m.Log.WithField("path", ctx.Path()).Warn("rejected admin request")
			}
			return response.NewFailed("Unauthorized", fiber.NewError(fiber.StatusUnauthorized, "invalid admin token"), nil).Send(ctx)
		}
		return ctx.Next()
	}
}
