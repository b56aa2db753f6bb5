package ingestwkr

import (
	"context"
	"runtime"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model/types"
	"github.com/swhelper/siege-backend/internal/pkg/jetstream"
	"github.com/swhelper/siege-backend/internal/pkg/observability"
	"github.com/swhelper/siege-backend/internal/service"
	"github.com/swhelper/siege-backend/internal/util/rekuest"
)

// Persister stores a queued batch. *service.SiegeLog implements it.
type Persister interface {
	Persist(ctx context.Context, task *types.SiegeLogTask) error
}

type WorkerDeps struct {
	fx.In

	NatsJS          nats.JetStreamContext
	SiegeLogService *service.SiegeLog
}

type Worker struct {
	// count is the number of consumers
	count int

	js        nats.JetStreamContext
	persister Persister
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.IngestWorkerEnabled {
		log.Info().Str("evt.name", "ingestwkr.disabled").Msg("ingest worker is disabled")
		return
	}

	ch := make(chan error)
	// handle & dump errors from consumers
	go func() {
		for {
			err := <-ch
			if err != nil {
				log.Error().Err(err).Msg("ingest worker error")
			}
		}
	}()

	w := &Worker{
		js:        deps.NatsJS,
		persister: deps.SiegeLogService,
	}

	n := conf.IngestWorkerCount
	if n <= 0 {
		n = runtime.NumCPU()
	}
	for i := 0; i < n; i++ {
		go func() {
			if err := w.Consumer(context.Background(), ch); err != nil {
				ch <- err
			}
		}()
		w.count++
	}
}

func (w *Worker) Consumer(ctx context.Context, ch chan error) error {
	msgChan := make(chan *nats.Msg, 16)

	// MaxAckPending should equal to (worker count * worker channel buffer size)
	_, err := w.js.ChanQueueSubscribe(jetstream.SiegeLogSubjects, jetstream.SiegeLogQueue, msgChan, nats.AckWait(time.Second*10), nats.MaxAckPending(128))
	if err != nil {
		log.Err(err).Msg("failed to subscribe to " + jetstream.SiegeLogSubjects)
		return err
	}

	for {
		select {
		case msg := <-msgChan:
			if err := w.Handle(ctx, msg.Data, msg.InProgress); err != nil {
				ch <- err
			}
			if err := msg.Ack(); err != nil {
				log.Error().Err(err).Msg("failed to ack")
			}
			if meta, err := msg.Metadata(); err == nil {
				observability.IngestConsumeMessagingLatency.WithLabelValues().Observe(time.Since(meta.Timestamp).Seconds())
				log.Trace().Str("msgId", jetstream.MessageID(meta.Sequence)).Msg("siege log message acked")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Handle decodes and stores one queued batch. inProgress is called when the batch
// takes longer than half of the ack deadline. The message is acked whatever the
// outcome: undecodable batches are reported, invalid ones are dropped.
func (w *Worker) Handle(ctx context.Context, data []byte, inProgress func(opts ...nats.AckOpt) error) error {
	start := time.Now()
	defer func() {
		observability.IngestConsumeDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	}()

	taskCtx, cancelTask := context.WithDeadline(ctx, time.Now().Add(time.Second*10))
	inprogressInformer := time.AfterFunc(time.Second*5, func() {
		if err := inProgress(); err != nil {
			log.Error().Err(err).Msg("failed to set msg InProgress")
		}
	})
	defer func() {
		inprogressInformer.Stop()
		cancelTask()
	}()

	task := &types.SiegeLogTask{}
	if err := json.Unmarshal(data, task); err != nil {
		// the payload may still be well-formed enough to name its task
		return errors.Wrapf(err, "failed to decode siege log task %q", gjson.GetBytes(data, "taskId").String())
	}

	L := log.With().
		Str("taskId", task.TaskID).
		Int("count", len(task.Logs)).
		Logger()

	if violations := rekuest.ValidateStruct(&types.SiegeLogBatchRequest{Logs: task.Logs}); violations != nil {
		L.Warn().
			Interface("violations", violations).
			Msg("dropping invalid siege log task")
		return nil
	}

	L.Info().Msg("now processing new siege log task")
	if err := w.persister.Persist(taskCtx, task); err != nil {
		L.Error().
			Err(err).
			Str("siegeLogTask", spew.Sdump(task)).
			Msg("failed to consume siege log task")
		return err
	}

	L.Info().Msg("siege log task processed successfully")
	return nil
}
