package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

func TestHealthCheckBattleLog(t *testing.T) {
	tests := []struct {
		name    string
		table   *sheet.Table
		err     error
		status  string
		healthy bool
		detail  string
	}{
		{"records", tableOf([]any{"", "Alice", "A", "", "", "Win", nil, nil}), nil, model.HealthStatusOK, true, "1 records"},
		{"empty sheet", tableOf(), nil, model.HealthStatusOK, true, "no data rows"},
		{"missing columns", &sheet.Table{Name: "SiegeLogs", Header: []string{"Wizard"}, Rows: [][]any{{"Alice"}}}, nil, model.HealthStatusDegraded, false, "Win/Lose"},
		{"unreadable", nil, sheet.ErrSheetNotFound, model.HealthStatusDegraded, false, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &countingProvider{table: tt.table, err: tt.err}
			s := &Health{BattleLog: &BattleLog{SheetName: "SiegeLogs", Sheets: provider}}

			report := s.Check(context.Background())
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, tt.healthy, report.Healthy())
			require.Len(t, report.Checks, 1)
			assert.Equal(t, "battle_log", report.Checks[0].Name)
			assert.Equal(t, tt.healthy, report.Checks[0].Healthy)
			assert.Contains(t, report.Checks[0].Detail, tt.detail)
		})
	}
}

func TestHealthCheckWithoutDependencies(t *testing.T) {
	report := (&Health{}).Check(context.Background())
	assert.True(t, report.Healthy())
	assert.Empty(t, report.Checks)
}
