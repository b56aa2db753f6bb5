package v3

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model/types"
	"github.com/swhelper/siege-backend/internal/pkg/cachectrl"
	"github.com/swhelper/siege-backend/internal/pkg/fiberstore"
	"github.com/swhelper/siege-backend/internal/pkg/flog"
	"github.com/swhelper/siege-backend/internal/pkg/middlewares"
	"github.com/swhelper/siege-backend/internal/server/svr"
	"github.com/swhelper/siege-backend/internal/service"
)

type SiegeLog struct {
	fx.In

	Config          *appconfig.Config
	Redis           *redis.Client
	SiegeLogService *service.SiegeLog
}

func RegisterSiegeLog(v3 *svr.V3, c SiegeLog) {
	handlers := []fiber.Handler{}
	if c.Config.SubmitRateLimit > 0 {
		handlers = append(handlers, limiter.New(limiter.Config{
			Max:        c.Config.SubmitRateLimit,
			Expiration: c.Config.SubmitRateWindow,
			Storage:    fiberstore.NewRedis(c.Redis, "limiter:siege-logs"),
			LimitReached: func(ctx *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "too many siege log submissions")
			},
		}))
	}
	handlers = append(handlers, middlewares.InjectValidBody[types.SiegeLogBatchRequest](), c.PostSiegeLogs)

	v3.Post("/siege-logs", handlers...)
}

// PostSiegeLogs queues the submitted battles for storage and answers 202 with the task id.
func (c *SiegeLog) PostSiegeLogs(ctx *fiber.Ctx) error {
	req, err := middlewares.Body[types.SiegeLogBatchRequest](ctx)
	if err != nil {
		return err
	}

	resp, err := c.SiegeLogService.QueueBatch(ctx.UserContext(), req, ctx.IP())
	if err != nil {
		return err
	}
	flog.InfoFrom(ctx).
		Str("taskId", resp.TaskID).
		Int("count", resp.Count).
		Msg("siege logs accepted")

	cachectrl.OptOut(ctx)
	return ctx.Status(fiber.StatusAccepted).JSON(resp)
}
