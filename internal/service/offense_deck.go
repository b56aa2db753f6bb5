package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/observability"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/util"
)

const DefaultDeckLogLimit = 50

var (
	ErrNoParticipant = errors.New("no participant supplied")
	ErrNoRecords     = errors.New("no eligible records for participant")
	ErrEmptyDeckKey  = errors.New("deck key names no monster")
)

// Aggregate groups the records eligible for target by deck identity in one pass.
// The representative deck of an identity is the slot order of its first eligible record.
func Aggregate(records []*model.BattleRecord, target string) map[string]*model.DeckStats {
	stats := make(map[string]*model.DeckStats)
	for _, record := range records {
		if !util.IsEligible(record, target) {
			continue
		}
		key, _ := util.NormalizeDeck(record.Deck)

		s, ok := stats[key]
		if !ok {
			s = &model.DeckStats{Key: key, Deck: record.Deck}
			stats[key] = s
		}
		if util.ParseOutcome(record.Outcome) == model.OutcomeWin {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return stats
}

// Rank orders stats by total descending, then exact win rate descending, then
// identity ascending, and keeps the first limit entries. A non-positive limit
// means model.DefaultDeckLimit.
func Rank(stats map[string]*model.DeckStats, limit int) []*model.RankedDeck {
	if limit <= 0 {
		limit = model.DefaultDeckLimit
	}

	ranked := make([]*model.RankedDeck, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, newRankedDeck(s))
	}

	slices.SortFunc(ranked, func(a, b *model.RankedDeck) bool {
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.Key < b.Key
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func newRankedDeck(s *model.DeckStats) *model.RankedDeck {
	return &model.RankedDeck{
		Key:            s.Key,
		Deck:           s.Deck,
		Wins:           s.Wins,
		Losses:         s.Losses,
		Total:          s.Total(),
		WinRate:        s.WinRate(),
		WinRatePercent: util.FormatWinRate(s.Wins, s.Total()),
	}
}

type OffenseDeck struct {
	BattleLog *BattleLog

	// DefaultLimit replaces a non-positive limit.
	DefaultLimit int
}

func NewOffenseDeck(conf *appconfig.Config, battleLog *BattleLog) *OffenseDeck {
	return &OffenseDeck{
		BattleLog:    battleLog,
		DefaultLimit: conf.DefaultDeckLimit,
	}
}

func (s *OffenseDeck) limit(limit int) int {
	if limit > 0 {
		return limit
	}
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return model.DefaultDeckLimit
}

// TopOffenseDecks ranks the offense decks used by participant.
// The participant is checked before any data access.
func (s *OffenseDeck) TopOffenseDecks(ctx context.Context, participant string, limit int) ([]*model.RankedDeck, error) {
	defer observeQuery("top_offense_decks", time.Now())

	target := util.CoerceText(participant)
	if target == "" {
		return nil, ErrNoParticipant
	}

	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(records, target)
	if len(stats) == 0 {
		return nil, errors.Wrapf(ErrNoRecords, "wizard %q", target)
	}

	return Rank(stats, s.limit(limit)), nil
}

// TopOffenseDecksGrid is TopOffenseDecks rendered as a grid. It never fails:
// every failure becomes a single placeholder row.
func (s *OffenseDeck) TopOffenseDecksGrid(ctx context.Context, participant string, limit int) model.Grid {
	decks, err := s.TopOffenseDecks(ctx, participant, limit)
	if err != nil {
		return s.placeholder(err)
	}
	return model.NewDeckGrid(decks)
}

func (s *OffenseDeck) placeholder(err error) model.Grid {
	var (
		reason  string
		message string
		missing *sheet.MissingColumnsError
	)
	switch {
	case errors.Is(err, ErrNoParticipant):
		reason, message = "no_participant", model.MsgNoParticipant
	case errors.Is(err, sheet.ErrNoData):
		reason, message = "no_data", model.MsgNoLogData
	case errors.As(err, &missing):
		reason, message = "missing_headers", model.MsgMissingHeaders
	case errors.Is(err, ErrNoRecords):
		reason, message = "no_records", model.MsgNoRecords
	case errors.Is(err, sheet.ErrSheetNotFound):
		reason, message = "sheet_not_found", model.MsgSheetNotFound(s.BattleLog.SheetName)
	default:
		log.Error().
			Err(err).
			Str("evt.name", "query.source_error").
			Str("sheet", s.BattleLog.SheetName).
			Msg("failed to read battle log source")
		reason, message = "source_error", model.MsgSheetNotFound(s.BattleLog.SheetName)
	}
	observability.QueryPlaceholders.WithLabelValues(reason).Inc()
	return model.PlaceholderGrid(message)
}

// OffenseDeckLogs returns the eligible battles of participant fought with the deck
// identified by deckKey, newest first. deckKey slots may be given in any order.
func (s *OffenseDeck) OffenseDeckLogs(ctx context.Context, participant, deckKey string, limit int) ([]*model.BattleRecord, error) {
	defer observeQuery("offense_deck_logs", time.Now())

	target := util.CoerceText(participant)
	if target == "" {
		return nil, ErrNoParticipant
	}
	key, ok := util.NormalizeDeckKey(lo.ToAnySlice(strings.Split(deckKey, util.DeckKeySep))...)
	if !ok {
		return nil, errors.Wrapf(ErrEmptyDeckKey, "deck key %q", deckKey)
	}
	if limit <= 0 {
		limit = DefaultDeckLogLimit
	}

	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}

	logs := lo.Filter(records, func(r *model.BattleRecord, _ int) bool {
		if !util.IsEligible(r, target) {
			return false
		}
		k, _ := util.NormalizeDeck(r.Deck)
		return k == key
	})
	slices.SortStableFunc(logs, func(a, b *model.BattleRecord) bool {
		return a.Timestamp > b.Timestamp
	})

	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func observeQuery(query string, start time.Time) {
	observability.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
