package model

const (
	SummaryCategoryAll      = "All"
	SummaryCategoryFourStar = "4★"
	SummaryCategoryFiveStar = "5★"
)

// FourStarBases are the siege base numbers holding 4-star towers. Every other base counts as 5-star.
var FourStarBases = map[int]struct{}{
	3: {}, 9: {}, 13: {}, 16: {}, 22: {}, 26: {}, 29: {}, 35: {}, 39: {},
}

type RecordSummary struct {
	Category       string `json:"category"`
	Total          int    `json:"total"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	WinRatePercent string `json:"winRatePercent"`
}

type WizardProfile struct {
	Wizard       string           `json:"wizard"`
	Summary      []*RecordSummary `json:"summary"`
	OffenseDecks []*RankedDeck    `json:"offenseDecks"`
}
