package types

import (
	"gopkg.in/guregu/null.v3"
)

// SiegeLogEntry is one battle submitted for storage. Field names mirror model.SiegeLog.
type SiegeLogEntry struct {
	Wizard string `json:"wizard" validate:"required,lte=64" example:"Alice"`
	Deck11 string `json:"deck1_1" validate:"lte=64,decklabel" example:"Lushen"`
	Deck12 string `json:"deck1_2" validate:"lte=64,decklabel"`
	Deck13 string `json:"deck1_3" validate:"lte=64,decklabel"`
	Deck21 string `json:"deck2_1" validate:"lte=64,decklabel"`
	Deck22 string `json:"deck2_2" validate:"lte=64,decklabel"`
	Deck23 string `json:"deck2_3" validate:"lte=64,decklabel"`
	Result string `json:"result" validate:"required,caseinsensitiveoneof=win lose" example:"Win"`

	Base      null.Int    `json:"base" validate:"omitempty,gte=1,lte=40"`
	OppWizard null.String `json:"oppWizard" validate:"lte=64"`
	OppGuild  null.String `json:"oppGuild" validate:"lte=64"`
	Ts        null.Time   `json:"ts"`
}

type SiegeLogBatchRequest struct {
	Logs []*SiegeLogEntry `json:"logs" validate:"required,min=1,max=500,dive"`
}

type SiegeLogBatchResponse struct {
	TaskID string `json:"taskId"`
	Count  int    `json:"count"`
}

// SiegeLogTask is the message queued for the ingest worker.
type SiegeLogTask struct {
	TaskID string           `json:"taskId"`
	Logs   []*SiegeLogEntry `json:"logs"`

	// CreatedAt is in microseconds
	CreatedAt int64  `json:"createdAt"`
	IP        string `json:"ip"`
}
