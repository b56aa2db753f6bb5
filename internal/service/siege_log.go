package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/zeebo/xxh3"
	"gopkg.in/guregu/null.v3"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/model/types"
	"github.com/swhelper/siege-backend/internal/pkg/jetstream"
	"github.com/swhelper/siege-backend/internal/pkg/observability"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/repo"
	"github.com/swhelper/siege-backend/internal/util"
)

var ErrPublishTimeout = errors.New("timeout waiting for NATS response")

// timestampLayouts are tried in order when importing a timestamp cell.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type SiegeLog struct {
	Config        *appconfig.Config
	DB            *bun.DB
	NatsJS        nats.JetStreamContext
	SiegeLogRepo  *repo.SiegeLog
	SheetService  *Sheet
	WizardService *Wizard
}

func NewSiegeLog(conf *appconfig.Config, db *bun.DB, natsJs nats.JetStreamContext, siegeLogRepo *repo.SiegeLog, sheetService *Sheet, wizardService *Wizard) *SiegeLog {
	return &SiegeLog{
		Config:        conf,
		DB:            db,
		NatsJS:        natsJs,
		SiegeLogRepo:  siegeLogRepo,
		SheetService:  sheetService,
		WizardService: wizardService,
	}
}

// NewTask wraps validated entries into an ingest task with a fresh task id.
func NewTask(req *types.SiegeLogBatchRequest, ip string) *types.SiegeLogTask {
	return &types.SiegeLogTask{
		TaskID:    strings.ToLower(ulid.Make().String()),
		Logs:      req.Logs,
		CreatedAt: time.Now().UnixMicro(),
		IP:        ip,
	}
}

// BatchDedupeID identifies the content of a batch; JetStream drops identical
// batches published within the stream's duplicate window.
func BatchDedupeID(logs []*types.SiegeLogEntry) (string, error) {
	b, err := json.Marshal(logs)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxh3.Hash(b), 16), nil
}

// QueueBatch publishes a validated batch to JetStream for the ingest worker.
func (s *SiegeLog) QueueBatch(ctx context.Context, req *types.SiegeLogBatchRequest, ip string) (*types.SiegeLogBatchResponse, error) {
	task := NewTask(req, ip)

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	dedupeID, err := BatchDedupeID(req.Logs)
	if err != nil {
		return nil, err
	}

	pub, err := s.NatsJS.PublishAsync(jetstream.SiegeLogSubjectBatch, payload, nats.MsgId(dedupeID))
	if err != nil {
		return nil, err
	}

	select {
	case err := <-pub.Err():
		return nil, err
	case <-pub.Ok():
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.Config.IngestPublishTimeout):
		return nil, ErrPublishTimeout
	}

	log.Info().
		Str("evt.name", "siegelog.queued").
		Str("taskId", task.TaskID).
		Int("count", len(task.Logs)).
		Msg("siege log batch queued")

	return &types.SiegeLogBatchResponse{TaskID: task.TaskID, Count: len(task.Logs)}, nil
}

// EntriesToModels copies submitted entries into storable rows. Text cells are
// trimmed and the result is stored as "Win" or "Lose".
func EntriesToModels(entries []*types.SiegeLogEntry) ([]*model.SiegeLog, error) {
	logs := make([]*model.SiegeLog, 0, len(entries))
	if err := copier.Copy(&logs, &entries); err != nil {
		return nil, errors.Wrap(err, "failed to copy siege log entries")
	}
	for _, l := range logs {
		l.Wizard = strings.TrimSpace(l.Wizard)
		l.Deck11, l.Deck12, l.Deck13 = strings.TrimSpace(l.Deck11), strings.TrimSpace(l.Deck12), strings.TrimSpace(l.Deck13)
		l.Deck21, l.Deck22, l.Deck23 = strings.TrimSpace(l.Deck21), strings.TrimSpace(l.Deck22), strings.TrimSpace(l.Deck23)
		l.Result = canonicalResult(l.Result)
	}
	return logs, nil
}

func canonicalResult(raw string) string {
	switch util.ParseOutcome(raw) {
	case model.OutcomeWin:
		return "Win"
	case model.OutcomeLose:
		return "Lose"
	default:
		return strings.TrimSpace(raw)
	}
}

// Persist stores the logs of task in one transaction and drops caches derived from the battle log.
func (s *SiegeLog) Persist(ctx context.Context, task *types.SiegeLogTask) error {
	logs, err := EntriesToModels(task.Logs)
	if err != nil {
		return err
	}
	return s.store(ctx, logs)
}

func (s *SiegeLog) store(ctx context.Context, logs []*model.SiegeLog) error {
	err := s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.SiegeLogRepo.CreateSiegeLogs(ctx, tx, logs)
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert siege logs")
	}

	observability.IngestedLogs.Add(float64(len(logs)))
	s.SheetService.Invalidate(ctx, s.Config.SheetName)
	s.WizardService.InvalidateWizards()
	return nil
}

// TableToModels converts a battle log sheet into storable rows. Rows without a wizard are skipped.
func TableToModels(table *sheet.Table) ([]*model.SiegeLog, error) {
	cols, err := util.ResolveBattleColumns(table)
	if err != nil {
		return nil, err
	}

	records := util.DecodeBattleRecords(table, cols)
	logs := make([]*model.SiegeLog, 0, len(records))
	for _, r := range records {
		if r.Participant == "" {
			continue
		}
		l := &model.SiegeLog{
			Wizard: r.Participant,
			Deck11: r.Deck[0], Deck12: r.Deck[1], Deck13: r.Deck[2],
			Deck21: r.Defense[0], Deck22: r.Defense[1], Deck23: r.Defense[2],
			Result:    canonicalResult(r.Outcome),
			OppWizard: null.NewString(r.OppWizard, r.OppWizard != ""),
			OppGuild:  null.NewString(r.OppGuild, r.OppGuild != ""),
		}
		if base, err := strconv.Atoi(r.Base); err == nil {
			l.Base = null.IntFrom(int64(base))
		}
		if ts, ok := parseTimestamp(r.Timestamp); ok {
			l.Ts = null.TimeFrom(ts)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ImportTable stores every row of table that names a wizard. It returns the number of stored rows.
func (s *SiegeLog) ImportTable(ctx context.Context, table *sheet.Table) (int, error) {
	logs, err := TableToModels(table)
	if err != nil {
		return 0, err
	}
	if err := s.store(ctx, logs); err != nil {
		return 0, err
	}
	return len(logs), nil
}
