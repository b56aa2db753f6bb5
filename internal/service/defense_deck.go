package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/util"
)

const (
	DefaultDefenseLimit  = 50
	DefaultDefenseCutoff = 4
)

var ErrInvalidDefenseKey = errors.New("defense key must name a leader and two followers")

// AggregateVsDefense groups the battles fought against the defense identified by
// defenseKey by offense deck, across every wizard. Both decks are keyed leader first,
// so only full three-monster decks count.
func AggregateVsDefense(records []*model.BattleRecord, defenseKey string) map[string]*model.DeckStats {
	stats := make(map[string]*model.DeckStats)
	for _, record := range records {
		outcome := util.ParseOutcome(record.Outcome)
		if outcome == model.OutcomeUnknown {
			continue
		}
		if key, ok := util.LeaderDeckKey(record.Defense); !ok || key != defenseKey {
			continue
		}
		key, ok := util.LeaderDeckKey(record.Deck)
		if !ok {
			continue
		}
		s, ok := stats[key]
		if !ok {
			s = &model.DeckStats{Key: key, Deck: record.Deck}
			stats[key] = s
		}
		if outcome == model.OutcomeWin {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return stats
}

// AggregateDefenses groups every battle by the defense it was fought against. Outcomes
// are seen from the defender: an attacker's loss is a defense win.
func AggregateDefenses(records []*model.BattleRecord) map[string]*model.DeckStats {
	stats := make(map[string]*model.DeckStats)
	for _, record := range records {
		outcome := util.ParseOutcome(record.Outcome)
		if outcome == model.OutcomeUnknown {
			continue
		}
		key, ok := util.LeaderDeckKey(record.Defense)
		if !ok {
			continue
		}
		s, ok := stats[key]
		if !ok {
			s = &model.DeckStats{Key: key, Deck: record.Defense}
			stats[key] = s
		}
		if outcome == model.OutcomeLose {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return stats
}

// RankDefenses drops defenses met fewer than cutoff times and orders the rest by
// win rate descending, then total descending, then identity ascending.
func RankDefenses(stats map[string]*model.DeckStats, cutoff, limit int) []*model.RankedDeck {
	ranked := make([]*model.RankedDeck, 0, len(stats))
	for _, s := range stats {
		if s.Total() < cutoff {
			continue
		}
		ranked = append(ranked, newRankedDeck(s))
	}

	slices.SortFunc(ranked, func(a, b *model.RankedDeck) bool {
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Key < b.Key
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DefenseDeck serves siege statistics keyed on the defending deck.
type DefenseDeck struct {
	BattleLog *BattleLog
}

func NewDefenseDeck(battleLog *BattleLog) *DefenseDeck {
	return &DefenseDeck{BattleLog: battleLog}
}

// OffenseStatsByDefense ranks the offense decks every wizard used against one defense.
// defenseKey is "leader|a|b" with followers in any order.
func (s *DefenseDeck) OffenseStatsByDefense(ctx context.Context, defenseKey string, limit int) ([]*model.RankedDeck, error) {
	defer observeQuery("offense_stats_by_defense", time.Now())

	key, ok := util.ParseLeaderDeckKey(defenseKey)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefenseKey, "defense key %q", defenseKey)
	}
	if limit <= 0 {
		limit = DefaultDefenseLimit
	}

	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(AggregateVsDefense(records, key), limit), nil
}

// DefenseDeckStats ranks the defenses met at least cutoff times by how often they held.
func (s *DefenseDeck) DefenseDeckStats(ctx context.Context, cutoff, limit int) ([]*model.RankedDeck, error) {
	defer observeQuery("defense_deck_stats", time.Now())

	if cutoff <= 0 {
		cutoff = DefaultDefenseCutoff
	}
	if limit <= 0 {
		limit = DefaultDefenseLimit
	}

	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}
	return RankDefenses(AggregateDefenses(records), cutoff, limit), nil
}

// OppGuilds lists the distinct non-empty opponent guilds of the battle log, sorted.
func (s *DefenseDeck) OppGuilds(ctx context.Context) ([]string, error) {
	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}
	guilds := lo.Uniq(lo.FilterMap(records, func(r *model.BattleRecord, _ int) (string, bool) {
		return r.OppGuild, r.OppGuild != ""
	}))
	slices.Sort(guilds)
	return guilds, nil
}
