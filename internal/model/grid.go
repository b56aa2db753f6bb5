package model

import "fmt"

// GridWidth is the number of cells of every offense deck grid row:
// three deck slots, wins, losses and the win rate percentage text.
const GridWidth = 6

const (
	MsgNoParticipant  = "No wizard name was supplied."
	MsgNoLogData      = "There is no log data."
	MsgMissingHeaders = "Headers (Wizard / Deck1-1~3 / Win/Lose) could not be found."
	MsgNoRecords      = "This wizard has no offense deck records."
)

// MsgSheetNotFound is the placeholder message for an absent or unreadable sheet.
func MsgSheetNotFound(sheetName string) string {
	return fmt.Sprintf("The %s sheet could not be found.", sheetName)
}

// Grid is a rectangular result with GridWidth cells per row.
type Grid [][]any

// PlaceholderGrid renders a single diagnostic row in place of ranked data.
func PlaceholderGrid(message string) Grid {
	return Grid{{message, "", "", "", "", ""}}
}

func NewDeckGrid(decks []*RankedDeck) Grid {
	grid := make(Grid, 0, len(decks))
	for _, d := range decks {
		grid = append(grid, []any{d.Deck[0], d.Deck[1], d.Deck[2], d.Wins, d.Losses, d.WinRatePercent})
	}
	return grid
}

// IsPlaceholder reports whether g is a single diagnostic row.
func (g Grid) IsPlaceholder() bool {
	if len(g) != 1 || len(g[0]) != GridWidth {
		return false
	}
	_, isCount := g[0][3].(int)
	return !isCount
}
