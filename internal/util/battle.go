package util

import (
	"strings"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

const (
	OutcomeTextWin  = "win"
	OutcomeTextLose = "lose"
)

// ParseOutcome classifies a raw result cell case-insensitively. Anything other
// than win or lose, including draws and typos, is OutcomeUnknown.
func ParseOutcome(raw string) model.Outcome {
	switch strings.ToLower(CoerceText(raw)) {
	case OutcomeTextWin:
		return model.OutcomeWin
	case OutcomeTextLose:
		return model.OutcomeLose
	default:
		return model.OutcomeUnknown
	}
}

// IsEligible reports whether record counts towards target's offense deck statistics:
// the wizard matches exactly, at least one deck slot is filled and the outcome is recognized.
func IsEligible(record *model.BattleRecord, target string) bool {
	if record.Participant != target {
		return false
	}
	if _, ok := NormalizeDeck(record.Deck); !ok {
		return false
	}
	return ParseOutcome(record.Outcome) != model.OutcomeUnknown
}

// ResolveBattleColumns resolves the battle log columns of table once, before any row is read.
// The wizard, offense deck and result columns are required.
func ResolveBattleColumns(table *sheet.Table) (*model.BattleColumns, error) {
	required, err := table.ResolveColumns(
		model.HeaderWizard,
		model.HeaderDeck1, model.HeaderDeck2, model.HeaderDeck3,
		model.HeaderResult,
	)
	if err != nil {
		return nil, err
	}
	optional := table.ResolveOptional(
		model.HeaderDefense1, model.HeaderDefense2, model.HeaderDefense3,
		model.HeaderTimestamp,
		model.HeaderBase,
		model.HeaderOppWizard,
		model.HeaderOppGuild,
	)

	return &model.BattleColumns{
		Wizard:    required[0],
		Deck:      [model.DeckSlots]int{required[1], required[2], required[3]},
		Result:    required[4],
		Defense:   [model.DeckSlots]int{optional[0], optional[1], optional[2]},
		Timestamp: optional[3],
		Base:      optional[4],
		OppWizard: optional[5],
		OppGuild:  optional[6],
	}, nil
}

// DecodeBattleRecord coerces the cells of one row into a BattleRecord.
func DecodeBattleRecord(row []any, cols *model.BattleColumns) *model.BattleRecord {
	text := func(idx int) string {
		return CoerceText(sheet.Cell(row, idx))
	}
	return &model.BattleRecord{
		Participant: text(cols.Wizard),
		Deck:        model.Deck{text(cols.Deck[0]), text(cols.Deck[1]), text(cols.Deck[2])},
		Outcome:     text(cols.Result),
		Defense:     model.Deck{text(cols.Defense[0]), text(cols.Defense[1]), text(cols.Defense[2])},
		Timestamp:   text(cols.Timestamp),
		Base:        text(cols.Base),
		OppWizard:   text(cols.OppWizard),
		OppGuild:    text(cols.OppGuild),
	}
}

func DecodeBattleRecords(table *sheet.Table, cols *model.BattleColumns) []*model.BattleRecord {
	records := make([]*model.BattleRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, DecodeBattleRecord(row, cols))
	}
	return records
}
