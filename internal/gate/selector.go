package gate

import (
	"time"

	"wordgate/internal/models"
)

// Selector implements the new-vs-review mixing policy. It is deterministic:
// candidates keep the storage ordering (due time ascending, then id
// ascending) and no map iteration is involved, so identical inputs always
// yield the same card.
type Selector struct {
	policy *models.Policy
}

func NewSelector(policy *models.Policy) *Selector {
	return &Selector{policy: policy}
}

// Next picks the card to present, or nil when both pools are exhausted (the
// gate's escape valve). lastShownID feeds the bury-immediate-repeat rule;
// pass 0 when nothing has been shown yet.
func (s *Selector) Next(now time.Time, candidates []models.Card, counters *models.DayCounters, lastShownID int64) *models.Card {
	var newPool, reviewPool []*models.Card
	for i := range candidates {
		card := &candidates[i]
		switch card.Kind() {
		case models.KindNew:
			if counters.NewShown < s.policy.NewPerDay {
				newPool = append(newPool, card)
			}
		case models.KindReview:
			if card.IsDue(now) && counters.ReviewShown < s.policy.ReviewPerDay {
				reviewPool = append(reviewPool, card)
			}
		}
	}

	var primary, fallback []*models.Card
	switch s.policy.MixMode {
	case models.MixModeNewFirst:
		primary, fallback = newPool, reviewPool
	case models.MixModeReviewsFirst:
		primary, fallback = reviewPool, newPool
	case models.MixModeMix:
		if s.newDueNow(counters, newPool, reviewPool) {
			primary, fallback = newPool, reviewPool
		} else {
			primary, fallback = reviewPool, newPool
		}
	}

	return s.pick(append(append([]*models.Card{}, primary...), fallback...), lastShownID)
}

// newDueNow decides whether MIX mode owes the user a new card: either enough
// reviews have passed since the last one, or there is nothing to review. The
// threshold is the ratio of remaining review quota to remaining new quota, so
// new cards spread evenly across the day's reviews.
func (s *Selector) newDueNow(counters *models.DayCounters, newPool, reviewPool []*models.Card) bool {
	if len(newPool) == 0 {
		return false
	}
	if len(reviewPool) == 0 {
		return true
	}
	remainingNew := s.policy.NewPerDay - counters.NewShown
	if remainingNew <= 0 {
		return false
	}
	threshold := (s.policy.ReviewPerDay - counters.ReviewShown) / remainingNew
	if threshold < 1 {
		threshold = 1
	}
	return counters.ReviewsSinceLastNew >= threshold
}

// pick applies the bury-immediate-repeat rule to the ordered candidate list:
// skip the last-shown card when an alternative exists, repeat it when it is
// the only real work left.
func (s *Selector) pick(ordered []*models.Card, lastShownID int64) *models.Card {
	if len(ordered) == 0 {
		return nil
	}
	if !s.policy.BuryImmediateRepeat || ordered[0].ID != lastShownID {
		return ordered[0]
	}
	if len(ordered) > 1 {
		return ordered[1]
	}
	return ordered[0]
}
