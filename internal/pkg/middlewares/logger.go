package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/pkg/flog"
)

const RequestIDHeader = "X-Siege-Request-ID"

// Logger attaches the request-scoped logger and its field enrichers, then the access log.
func Logger(app *fiber.App) {
	for _, h := range []fiber.Handler{
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.MethodHandler("method"),
		flog.URLHandler("url"),
		flog.UserAgentHandler("user_agent"),
		requestLogger(),
	} {
		app.Use(h)
	}
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(ctx *fiber.Ctx, duration time.Duration) {
		flog.InfoFrom(ctx).
			Str("component", "httpreq").
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", duration).
			Msg("received request")
	})
}
