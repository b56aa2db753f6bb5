package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type SiegeLog struct {
	bun.BaseModel `bun:"siege_logs,alias:sl"`

	LogID     int64       `bun:",pk,autoincrement" json:"logId"`
	Wizard    string      `bun:"wizard,notnull" json:"wizard"`
	Deck11    string      `bun:"deck1_1" json:"deck1_1"`
	Deck12    string      `bun:"deck1_2" json:"deck1_2"`
	Deck13    string      `bun:"deck1_3" json:"deck1_3"`
	Deck21    string      `bun:"deck2_1" json:"deck2_1"`
	Deck22    string      `bun:"deck2_2" json:"deck2_2"`
	Deck23    string      `bun:"deck2_3" json:"deck2_3"`
	Result    string      `bun:"result,notnull" json:"result"`
	Base      null.Int    `bun:"base" json:"base"`
	OppWizard null.String `bun:"opp_wizard" json:"oppWizard"`
	OppGuild  null.String `bun:"opp_guild" json:"oppGuild"`
	Ts        null.Time   `bun:"ts" json:"ts"`
	CreatedAt *time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// SiegeLogHeader is the header of a sheet built from stored siege logs; see SiegeLog.Row.
var SiegeLogHeader = []string{
	HeaderTimestamp,
	HeaderWizard,
	HeaderDeck1, HeaderDeck2, HeaderDeck3,
	HeaderDefense1, HeaderDefense2, HeaderDefense3,
	HeaderResult,
	HeaderBase,
	HeaderOppWizard,
	HeaderOppGuild,
}

// Row renders the log as cells laid out as SiegeLogHeader. Null columns become nil cells.
func (l *SiegeLog) Row() []any {
	var ts, base, oppWizard, oppGuild any
	if l.Ts.Valid {
		ts = l.Ts.Time.UTC().Format(time.RFC3339)
	}
	if l.Base.Valid {
		base = l.Base.Int64
	}
	if l.OppWizard.Valid {
		oppWizard = l.OppWizard.String
	}
	if l.OppGuild.Valid {
		oppGuild = l.OppGuild.String
	}
	return []any{
		ts,
		l.Wizard,
		l.Deck11, l.Deck12, l.Deck13,
		l.Deck21, l.Deck22, l.Deck23,
		l.Result,
		base,
		oppWizard,
		oppGuild,
	}
}
