package service

import (
	"context"
	"strconv"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

var ErrNATSNotConnected = errors.New("nats not connected")

// Health reports on the stores the leaderboard depends on and on the battle log itself.
// Dependencies left nil are not checked.
type Health struct {
	DB        *bun.DB
	Redis     *redis.Client
	NATS      *nats.Conn
	BattleLog *BattleLog
}

func NewHealth(db *bun.DB, redis *redis.Client, nats *nats.Conn, battleLog *BattleLog) *Health {
	return &Health{
		DB:        db,
		Redis:     redis,
		NATS:      nats,
		BattleLog: battleLog,
	}
}

type healthCheck struct {
	name string
	fn   func(ctx context.Context) (detail string, err error)
}

func (s *Health) checks() []healthCheck {
	var checks []healthCheck
	if s.DB != nil {
		checks = append(checks, healthCheck{"postgres", func(ctx context.Context) (string, error) {
			return "", s.DB.PingContext(ctx)
		}})
	}
	if s.Redis != nil {
		checks = append(checks, healthCheck{"redis", func(ctx context.Context) (string, error) {
			return "", s.Redis.Ping(ctx).Err()
		}})
	}
	if s.NATS != nil {
		// nats pings on its own every 20 seconds (see infra.NATS)
		checks = append(checks, healthCheck{"nats", func(context.Context) (string, error) {
			status := s.NATS.Status()
			if status != nats.CONNECTED && status != nats.DRAINING_PUBS && status != nats.DRAINING_SUBS {
				return "", errors.Wrap(ErrNATSNotConnected, status.String())
			}
			return "", nil
		}})
	}
	if s.BattleLog != nil {
		checks = append(checks, healthCheck{"battle_log", s.battleLog})
	}
	return checks
}

// battleLog reads the sheet through the snapshot cache. An empty sheet is reachable
// and therefore healthy; an unreadable one or one missing required columns is not.
func (s *Health) battleLog(ctx context.Context) (string, error) {
	records, err := s.BattleLog.Records(ctx)
	if errors.Is(err, sheet.ErrNoData) {
		return "no data rows", nil
	}
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(records)) + " records", nil
}

// Check runs every configured check in order and never fails itself.
func (s *Health) Check(ctx context.Context) *model.HealthReport {
	report := &model.HealthReport{Status: model.HealthStatusOK, Checks: []*model.HealthCheck{}}
	for _, c := range s.checks() {
		detail, err := c.fn(ctx)
		check := &model.HealthCheck{Name: c.name, Healthy: err == nil, Detail: detail}
		if err != nil {
			check.Detail = err.Error()
			report.Status = model.HealthStatusDegraded
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}
