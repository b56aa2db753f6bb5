package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

func TestParseOutcome(t *testing.T) {
	assert.Equal(t, model.OutcomeWin, ParseOutcome("Win"))
	assert.Equal(t, model.OutcomeWin, ParseOutcome(" WIN "))
	assert.Equal(t, model.OutcomeLose, ParseOutcome("lose"))
	assert.Equal(t, model.OutcomeUnknown, ParseOutcome("Draw"))
	assert.Equal(t, model.OutcomeUnknown, ParseOutcome("Lost"))
	assert.Equal(t, model.OutcomeUnknown, ParseOutcome(""))
}

func TestIsEligible(t *testing.T) {
	base := model.BattleRecord{Participant: "Alice", Deck: model.Deck{"A", "B", "C"}, Outcome: "Win"}

	r := base
	assert.True(t, IsEligible(&r, "Alice"))

	r = base
	assert.False(t, IsEligible(&r, "alice"), "wizard match is case sensitive")

	r = base
	r.Participant = "Bob"
	assert.False(t, IsEligible(&r, "Alice"))

	r = base
	r.Deck = model.Deck{}
	assert.False(t, IsEligible(&r, "Alice"), "all slots empty")

	r = base
	r.Outcome = "Draw"
	assert.False(t, IsEligible(&r, "Alice"), "unrecognized outcome")

	r = base
	r.Deck = model.Deck{"", "B", ""}
	r.Outcome = "LOSE"
	assert.True(t, IsEligible(&r, "Alice"))
}

func TestResolveBattleColumns(t *testing.T) {
	table := &sheet.Table{
		Header: []string{"Timestamp", "Wizard", "Deck1-1", "Deck1-2", "Deck1-3", "Deck2-1", "Win/Lose", "Base"},
	}

	cols, err := ResolveBattleColumns(table)
	require.NoError(t, err)
	assert.Equal(t, 1, cols.Wizard)
	assert.Equal(t, [3]int{2, 3, 4}, cols.Deck)
	assert.Equal(t, 6, cols.Result)
	assert.Equal(t, [3]int{5, -1, -1}, cols.Defense)
	assert.Equal(t, 0, cols.Timestamp)
	assert.Equal(t, 7, cols.Base)
	assert.Equal(t, -1, cols.OppWizard)
	assert.Equal(t, -1, cols.OppGuild)
}

func TestResolveBattleColumnsMissingResult(t *testing.T) {
	table := &sheet.Table{Header: []string{"Wizard", "Deck1-1", "Deck1-2", "Deck1-3"}}

	_, err := ResolveBattleColumns(table)
	var missing *sheet.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Win/Lose"}, missing.Missing)
}

func TestDecodeBattleRecords(t *testing.T) {
	table := &sheet.Table{
		Header: []string{"Wizard", "Deck1-1", "Deck1-2", "Deck1-3", "Win/Lose", "Base"},
		Rows: [][]any{
			{" Alice ", "Lushen", nil, 3.0, "Win", int64(9)},
			{"Bob", "X"},
		},
	}
	cols, err := ResolveBattleColumns(table)
	require.NoError(t, err)

	records := DecodeBattleRecords(table, cols)
	require.Len(t, records, 2)

	assert.Equal(t, "Alice", records[0].Participant)
	assert.Equal(t, model.Deck{"Lushen", "", "3"}, records[0].Deck)
	assert.Equal(t, "Win", records[0].Outcome)
	assert.Equal(t, "9", records[0].Base)

	// short rows read missing cells as empty
	assert.Equal(t, model.Deck{"X", "", ""}, records[1].Deck)
	assert.Equal(t, "", records[1].Outcome)
}
