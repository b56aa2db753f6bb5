package service

import (
	"context"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

var battleHeader = []string{"Timestamp", "Wizard", "Deck1-1", "Deck1-2", "Deck1-3", "Win/Lose", "Base", "Opp Wizard"}

// countingProvider serves a fixed table and counts reads.
type countingProvider struct {
	table *sheet.Table
	err   error
	reads int
}

func (p *countingProvider) Table(_ context.Context, name string) (*sheet.Table, error) {
	p.reads++
	if p.err != nil {
		return nil, p.err
	}
	return p.table, nil
}

func newOffenseDeck(provider sheet.Provider) *OffenseDeck {
	return &OffenseDeck{
		BattleLog:    &BattleLog{SheetName: "SiegeLogs", Sheets: provider},
		DefaultLimit: model.DefaultDeckLimit,
	}
}

func tableOf(rows ...[]any) *sheet.Table {
	return &sheet.Table{Name: "SiegeLogs", Header: battleHeader, Rows: rows}
}

func record(participant, s1, s2, s3, outcome string) *model.BattleRecord {
	return &model.BattleRecord{Participant: participant, Deck: model.Deck{s1, s2, s3}, Outcome: outcome}
}
