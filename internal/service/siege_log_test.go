package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/model/types"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

func TestEntriesToModels(t *testing.T) {
	ts := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*types.SiegeLogEntry{
		{
			Wizard: " Alice ", Deck11: "Lushen ", Deck12: "Bella", Result: "WIN",
			Base: null.IntFrom(9), OppGuild: null.StringFrom("Nightfall"), Ts: null.TimeFrom(ts),
		},
		{Wizard: "Bob", Deck11: "Verde", Result: "lose"},
	}

	logs, err := EntriesToModels(entries)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "Alice", logs[0].Wizard)
	assert.Equal(t, "Lushen", logs[0].Deck11)
	assert.Equal(t, "Win", logs[0].Result)
	assert.Equal(t, int64(9), logs[0].Base.Int64)
	assert.Equal(t, "Nightfall", logs[0].OppGuild.String)
	assert.True(t, logs[0].Ts.Time.Equal(ts))

	assert.Equal(t, "Lose", logs[1].Result)
	assert.False(t, logs[1].Base.Valid)
}

func TestBatchDedupeID(t *testing.T) {
	a := []*types.SiegeLogEntry{{Wizard: "Alice", Result: "Win"}}
	b := []*types.SiegeLogEntry{{Wizard: "Alice", Result: "Win"}}
	c := []*types.SiegeLogEntry{{Wizard: "Alice", Result: "Lose"}}

	idA, err := BatchDedupeID(a)
	require.NoError(t, err)
	idB, _ := BatchDedupeID(b)
	idC, _ := BatchDedupeID(c)

	assert.Equal(t, idA, idB)
	assert.NotEqual(t, idA, idC)
}

func TestNewTask(t *testing.T) {
	req := &types.SiegeLogBatchRequest{Logs: []*types.SiegeLogEntry{{Wizard: "Alice", Result: "Win"}}}

	first := NewTask(req, "10.0.0.1")
	second := NewTask(req, "10.0.0.1")

	assert.Len(t, first.TaskID, 26)
	assert.NotEqual(t, first.TaskID, second.TaskID)
	assert.Equal(t, "10.0.0.1", first.IP)
	assert.NotZero(t, first.CreatedAt)
}

func TestTableToModels(t *testing.T) {
	table := &sheet.Table{
		Header: model.SiegeLogHeader,
		Rows: [][]any{
			{"2023-03-01 12:30:00", "Alice", "Lushen", "Bella", "", "Verde", "", "", "win", "9", "Zed", ""},
			{nil, "", "Lushen", "", "", "", "", "", "Win", nil, nil, nil},
			{"not a time", "Bob", "A", "", "", "", "", "", "Draw", "north", nil, nil},
		},
	}

	logs, err := TableToModels(table)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "Alice", logs[0].Wizard)
	assert.Equal(t, "Win", logs[0].Result)
	assert.Equal(t, "Verde", logs[0].Deck21)
	assert.Equal(t, null.IntFrom(9), logs[0].Base)
	assert.Equal(t, null.StringFrom("Zed"), logs[0].OppWizard)
	assert.False(t, logs[0].OppGuild.Valid)
	assert.Equal(t, time.Date(2023, 3, 1, 12, 30, 0, 0, time.UTC), logs[0].Ts.Time)

	assert.Equal(t, "Draw", logs[1].Result)
	assert.False(t, logs[1].Base.Valid)
	assert.False(t, logs[1].Ts.Valid)
}

func TestSiegeLogRowRoundTrip(t *testing.T) {
	stored := &model.SiegeLog{
		Wizard: "Alice", Deck11: "Lushen", Deck12: "Bella", Result: "Lose",
		Base: null.IntFrom(22), Ts: null.TimeFrom(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	table := &sheet.Table{Header: model.SiegeLogHeader, Rows: [][]any{stored.Row()}}

	logs, err := TableToModels(table)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, stored.Wizard, logs[0].Wizard)
	assert.Equal(t, stored.Base, logs[0].Base)
	assert.True(t, stored.Ts.Time.Equal(logs[0].Ts.Time))
}
