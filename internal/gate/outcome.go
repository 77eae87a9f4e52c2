package gate

import (
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/scheduling/interfaces"
	"wordgate/internal/storage"
)

type ReviewOutcomeProcessorInterface interface {
	// Apply commits a user's answer to a card as one unit: correctness
	// counters, lastShownAt, new scheduling state + due time, and the day
	// ledger. On any failure the card is left untouched.
	Apply(cardID int64, outcome models.Outcome, now time.Time) (*models.Card, error)
}

type ReviewOutcomeProcessor struct {
	cards     storage.CardRepositoryInterface
	scheduler interfaces.CardSchedulerInterface
	counters  DayCounterManagerInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

func NewReviewOutcomeProcessor(
	cards storage.CardRepositoryInterface,
	scheduler interfaces.CardSchedulerInterface,
	counters DayCounterManagerInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) ReviewOutcomeProcessorInterface {
	return &ReviewOutcomeProcessor{
		cards:     cards,
		scheduler: scheduler,
		counters:  counters,
		logger:    logger,
		metrics:   metrics,
	}
}

func (p *ReviewOutcomeProcessor) Apply(cardID int64, outcome models.Outcome, now time.Time) (*models.Card, error) {
	start := time.Now()

	card, err := p.cards.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	// Classification must be taken before this update sets lastShownAt.
	kind := card.Kind()

	// The scheduler runs first: a corrupt state blob must fail the whole
	// operation before anything is written.
	newState, dueAt, err := p.scheduler.Schedule(card.SchedulingState, outcome, now)
	if err != nil {
		return nil, err
	}

	updated := card.Clone()
	switch outcome {
	case models.OutcomeCorrect:
		updated.CorrectCount++
	case models.OutcomeIncorrect:
		updated.IncorrectCount++
	}
	shownAt := now
	updated.LastShownAt = &shownAt
	updated.SchedulingState = newState
	updated.DueAt = dueAt

	if err := p.cards.Update(updated); err != nil {
		return nil, err
	}

	if err := p.counters.RecordShown(kind, now); err != nil {
		// The ledger write failed after the card row was committed. Restore
		// the card so the two never diverge; best effort, the store is a
		// single local sqlite file.
		if restoreErr := p.cards.Update(card); restoreErr != nil {
			p.logger.Errorf(providers.TypeReview, "Failed to restore card %d after ledger error: %s", card.ID, restoreErr)
		}
		return nil, err
	}

	p.metrics.IncReviewOutcome(outcome.String(), kind.String())
	p.metrics.ObservePersistenceDuration(time.Since(start))
	p.logger.Infof(providers.TypeReview, "Card %d answered %s; next due %s", card.ID, outcome, dueAt.Format(time.RFC3339))
	return updated, nil
}
