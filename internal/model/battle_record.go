package model

// Header names of the battle log sheet.
const (
	HeaderWizard    = "Wizard"
	HeaderDeck1     = "Deck1-1"
	HeaderDeck2     = "Deck1-2"
	HeaderDeck3     = "Deck1-3"
	HeaderResult    = "Win/Lose"
	HeaderDefense1  = "Deck2-1"
	HeaderDefense2  = "Deck2-2"
	HeaderDefense3  = "Deck2-3"
	HeaderTimestamp = "Timestamp"
	HeaderBase      = "Base"
	HeaderOppWizard = "Opp Wizard"
	HeaderOppGuild  = "Opp Guild"
)

// DeckSlots is the number of monsters in one siege deck.
const DeckSlots = 3

// Deck is a composition of up to three monsters in the order they were recorded.
// Empty slots are empty strings.
type Deck [DeckSlots]string

type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin
	OutcomeLose
)

// BattleRecord is one row of the battle log after every cell has been coerced to text.
type BattleRecord struct {
	Participant string `json:"wizard"`
	Deck        Deck   `json:"deck"`
	Outcome     string `json:"result"`

	// optional context columns; empty when the sheet does not carry them
	Defense   Deck   `json:"defense"`
	Timestamp string `json:"timestamp,omitempty"`
	Base      string `json:"base,omitempty"`
	OppWizard string `json:"oppWizard,omitempty"`
	OppGuild  string `json:"oppGuild,omitempty"`
}

// BattleColumns holds resolved column positions of a battle log sheet.
// Optional columns are -1 when absent.
type BattleColumns struct {
	Wizard int
	Deck   [DeckSlots]int
	Result int

	Defense   [DeckSlots]int
	Timestamp int
	Base      int
	OppWizard int
	OppGuild  int
}
