package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/repo/selector"
)

type SiegeLog struct {
	db  *bun.DB
	sel selector.S[model.SiegeLog]
}

func NewSiegeLog(db *bun.DB) *SiegeLog {
	return &SiegeLog{db: db, sel: selector.New[model.SiegeLog](db)}
}

// GetSiegeLogs returns every stored log in insertion order.
func (r *SiegeLog) GetSiegeLogs(ctx context.Context) ([]*model.SiegeLog, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("log_id ASC")
	})
}

func (r *SiegeLog) CreateSiegeLogs(ctx context.Context, tx bun.Tx, logs []*model.SiegeLog) error {
	if len(logs) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&logs).
		Exec(ctx)
	return err
}

func (r *SiegeLog) CountSiegeLogs(ctx context.Context) (int, error) {
	return r.sel.Count(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

// CreateSchema creates the siege_logs table and its wizard index when they do not exist yet.
func (r *SiegeLog) CreateSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.SiegeLog)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.NewCreateIndex().
		Model((*model.SiegeLog)(nil)).
		Index("siege_logs_wizard_idx").
		Column("wizard").
		IfNotExists().
		Exec(ctx)
	return err
}
