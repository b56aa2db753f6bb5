package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/app/appcontext"
	"github.com/swhelper/siege-backend/internal/controller"
	"github.com/swhelper/siege-backend/internal/infra"
	"github.com/swhelper/siege-backend/internal/pkg/logger"
	"github.com/swhelper/siege-backend/internal/repo"
	"github.com/swhelper/siege-backend/internal/server"
	"github.com/swhelper/siege-backend/internal/service"
	"github.com/swhelper/siege-backend/internal/workers/exportwkr"
	"github.com/swhelper/siege-backend/internal/workers/ingestwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration live outside of the fx graph as fx itself logs through the logger
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// fx Extra Options
		fx.StartTimeout(5 * time.Second),
		// fiber's Shutdown() honours its own IdleTimeout; this only guards a shutdown that never returns.
		fx.StopTimeout(5 * time.Minute),
	}

	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts,
			// Servers
			server.Module(),

			// Sentry and tracing must be ready before any controller is registered.
			fx.Invoke(infra.SentryInit),
			fx.Invoke(infra.Tracing),

			// Controllers
			controller.Module(),

			// Workers
			fx.Invoke(ingestwkr.Start),
			fx.Invoke(exportwkr.Start),
		)
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
