package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/pkg/bininfo"
	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/server/svr"
	"github.com/swhelper/siege-backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(bininfo.Map())
}

// Health answers 503 with the failing checks as extras when any dependency is down.
func (c *Meta) Health(ctx *fiber.Ctx) error {
	report := c.HealthService.Check(ctx.UserContext())
	if !report.Healthy() {
		return pgerr.ErrUnavailable.
			Msg("service is degraded").
			WithExtras(pgerr.Extras{"checks": report.Checks})
	}

	return ctx.JSON(report)
}
