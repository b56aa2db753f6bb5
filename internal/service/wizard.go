package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/cache"
	"github.com/swhelper/siege-backend/internal/util"
)

const WizardListTTL = 10 * time.Minute

type Wizard struct {
	BattleLog   *BattleLog
	OffenseDeck *OffenseDeck

	wizards *cache.Singular[[]string]
}

func NewWizard(battleLog *BattleLog, offenseDeck *OffenseDeck) *Wizard {
	return &Wizard{
		BattleLog:   battleLog,
		OffenseDeck: offenseDeck,
		wizards:     cache.NewSingular[[]string]("wizards"),
	}
}

// Wizards lists the distinct non-empty wizard names of the battle log, sorted.
func (s *Wizard) Wizards(ctx context.Context) ([]string, error) {
	var wizards []string
	err := s.wizards.MutexGetSet(&wizards, func() ([]string, error) {
		records, err := s.BattleLog.Records(ctx)
		if err != nil {
			return nil, err
		}
		names := lo.Uniq(lo.FilterMap(records, func(r *model.BattleRecord, _ int) (string, bool) {
			return r.Participant, r.Participant != ""
		}))
		slices.Sort(names)
		return names, nil
	}, WizardListTTL)
	return wizards, err
}

// InvalidateWizards drops the cached wizard list.
func (s *Wizard) InvalidateWizards() {
	s.wizards.Delete()
}

// BaseCategory classifies a siege base number. Unknown or unparsable bases count as 5★.
func BaseCategory(base string) string {
	n, err := strconv.Atoi(base)
	if err != nil {
		return model.SummaryCategoryFiveStar
	}
	if _, ok := model.FourStarBases[n]; ok {
		return model.SummaryCategoryFourStar
	}
	return model.SummaryCategoryFiveStar
}

// Summarize counts the battles of target with a recognized outcome, overall and per base category.
// The deck composition does not matter here.
func Summarize(records []*model.BattleRecord, target string) []*model.RecordSummary {
	summaries := map[string]*model.RecordSummary{
		model.SummaryCategoryAll:      {Category: model.SummaryCategoryAll},
		model.SummaryCategoryFourStar: {Category: model.SummaryCategoryFourStar},
		model.SummaryCategoryFiveStar: {Category: model.SummaryCategoryFiveStar},
	}

	linq.From(records).
		WhereT(func(r *model.BattleRecord) bool {
			return r.Participant == target && util.ParseOutcome(r.Outcome) != model.OutcomeUnknown
		}).
		GroupByT(
			func(r *model.BattleRecord) string { return BaseCategory(r.Base) },
			func(r *model.BattleRecord) model.Outcome { return util.ParseOutcome(r.Outcome) },
		).
		ForEachT(func(group linq.Group) {
			category := summaries[group.Key.(string)]
			all := summaries[model.SummaryCategoryAll]
			for _, outcome := range group.Group {
				if outcome.(model.Outcome) == model.OutcomeWin {
					category.Wins++
					all.Wins++
				} else {
					category.Losses++
					all.Losses++
				}
			}
		})

	result := []*model.RecordSummary{
		summaries[model.SummaryCategoryAll],
		summaries[model.SummaryCategoryFourStar],
		summaries[model.SummaryCategoryFiveStar],
	}
	for _, s := range result {
		s.Total = s.Wins + s.Losses
		s.WinRatePercent = util.FormatWinRate(s.Wins, s.Total)
	}
	return result
}

func (s *Wizard) Summary(ctx context.Context, wizard string) ([]*model.RecordSummary, error) {
	defer observeQuery("summary", time.Now())

	target := util.CoerceText(wizard)
	if target == "" {
		return nil, ErrNoParticipant
	}
	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(records, target), nil
}

// Profile builds the record summary and the offense deck ranking of wizard from one
// read of the battle log. A wizard without eligible offense decks gets an empty ranking.
func (s *Wizard) Profile(ctx context.Context, wizard string, limit int) (*model.WizardProfile, error) {
	defer observeQuery("profile", time.Now())

	target := util.CoerceText(wizard)
	if target == "" {
		return nil, ErrNoParticipant
	}
	records, err := s.BattleLog.Records(ctx)
	if err != nil {
		return nil, err
	}

	// both views only read the shared snapshot
	profile := &model.WizardProfile{Wizard: target}
	var eg errgroup.Group
	eg.Go(func() error {
		profile.Summary = Summarize(records, target)
		return nil
	})
	eg.Go(func() error {
		profile.OffenseDecks = Rank(Aggregate(records, target), s.OffenseDeck.limit(limit))
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}
