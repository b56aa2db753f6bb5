package model

// DefaultDeckLimit is the number of ranked decks returned when no positive limit is asked for.
const DefaultDeckLimit = 10

// DeckStats accumulates outcomes of one deck identity for one wizard.
type DeckStats struct {
	// Key is the order-independent deck identity.
	Key string

	// Deck is the slot order of the first qualifying record seen for Key.
	Deck Deck

	Wins   int
	Losses int
}

func (s *DeckStats) Total() int {
	return s.Wins + s.Losses
}

func (s *DeckStats) WinRate() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Wins) / float64(total)
}

type RankedDeck struct {
	Key            string  `json:"key"`
	Deck           Deck    `json:"deck"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Total          int     `json:"total"`
	WinRate        float64 `json:"winRate"`
	WinRatePercent string  `json:"winRatePercent"`
}
