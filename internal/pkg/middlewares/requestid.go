package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swhelper/siege-backend/internal/pkg/flog"
)

const ContextKeyRequestID = "requestId"

// RequestID copies the request id injected by Logger into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
