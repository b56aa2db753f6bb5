package service

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/util"
)

var tracer = otel.Tracer("service")

// BattleLog decodes the rows of the battle log sheet into records.
type BattleLog struct {
	SheetName string
	Sheets    sheet.Provider
}

func NewBattleLog(conf *appconfig.Config, sheetService *Sheet) *BattleLog {
	return &BattleLog{
		SheetName: conf.SheetName,
		Sheets:    sheetService,
	}
}

// Records reads the whole sheet once. Failures are reported in this order:
// the sheet cannot be read, it has no data rows, a required column is missing.
func (s *BattleLog) Records(ctx context.Context) ([]*model.BattleRecord, error) {
	ctx, span := tracer.Start(ctx, "BattleLog.Records")
	defer span.End()

	table, err := s.table(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	cols, err := util.ResolveBattleColumns(table)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	records := util.DecodeBattleRecords(table, cols)
	span.SetAttributes(
		attribute.String("sheet", s.SheetName),
		attribute.Int("records", len(records)),
	)
	return records, nil
}

func (s *BattleLog) table(ctx context.Context) (*sheet.Table, error) {
	table, err := s.Sheets.Table(ctx, s.SheetName)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to read sheet %q", s.SheetName)
	}
	if table == nil || len(table.Rows) == 0 {
		return nil, errors.Wrapf(sheet.ErrNoData, "sheet %q", s.SheetName)
	}
	return table, nil
}
