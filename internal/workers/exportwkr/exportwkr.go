package exportwkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	ExportService *service.Export
}

type Worker struct {
	// count counts exports the worker has completed so far
	count int

	// interval describes the interval in-between exports
	interval time.Duration

	WorkerDeps
}

// Start exports the stored siege logs to S3 every ExportWorkerInterval.
// A zero interval or a missing bucket disables the worker.
func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if conf.ExportWorkerInterval <= 0 || conf.S3Bucket == "" {
		log.Debug().Str("evt.name", "exportwkr.disabled").Msg("export worker is disabled")
		return
	}

	cancel := (&Worker{
		interval:   conf.ExportWorkerInterval,
		WorkerDeps: deps,
	}).do()

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			start := time.Now()
			log.Info().
				Int("count", w.count).
				Msg("export worker started")

			if err := w.ExportService.ExportSheet(ctx, start); err != nil {
				log.Error().Err(err).Int("count", w.count).Msg("export worker failed")
			} else {
				log.Info().
					Int("count", w.count).
					Dur("duration", time.Since(start)).
					Msg("export worker finished")
				w.count++
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return cancel
}
