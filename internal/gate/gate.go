package gate

import (
	"errors"
	"sync"
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/scheduling/interfaces"
	"wordgate/internal/storage"
	"wordgate/internal/structures"
)

type EngineInterface interface {
	// OnLaunchAttempt decides ALLOW or CHALLENGE for one launch of appID.
	OnLaunchAttempt(appID string, now time.Time) (*models.Decision, error)

	// OnAnswer completes the pending review for appID and, on success,
	// opens an unlock window.
	OnAnswer(appID string, outcome models.Outcome, now time.Time) (*models.Decision, error)

	// OnAbandon reverts a pending review to the locked state with no
	// counter or card mutation.
	OnAbandon(appID string) error

	// ForceLock closes any unlock window for appID.
	ForceLock(appID string) error

	// ResetScheduling reinitializes a card's opaque scheduling state and
	// lifts its quarantine. Explicit recovery, never automatic.
	ResetScheduling(cardID int64, now time.Time) error

	// QuarantinedCards lists cards excluded from selection because their
	// scheduling state could not be interpreted.
	QuarantinedCards() []int64
}

// appState serializes all gate transitions for one app. A second launch
// attempt arriving while a review is in flight joins the pending decision
// instead of starting another flow. unlockPending marks a review whose
// outcome committed but whose unlock write failed; a retry must only reopen
// the session, never re-apply the outcome.
type appState struct {
	mu            sync.Mutex
	awaiting      bool
	pending       *models.Card
	unlockPending bool
}

// Engine is the launch interception gate. Per-app state lives behind per-app
// locks; the only cross-app state is the day ledger (its own mutex inside
// DayCounterManager) and the anti-repeat/quarantine bookkeeping under mu.
type Engine struct {
	policy    *models.Policy
	blocked   map[string]struct{}
	cards     storage.CardRepositoryInterface
	counters  DayCounterManagerInterface
	sessions  GateSessionManagerInterface
	selector  *Selector
	outcomes  ReviewOutcomeProcessorInterface
	scheduler interfaces.CardSchedulerInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface

	mu          sync.Mutex
	apps        map[string]*appState
	lastShownID int64
	quarantine  map[int64]struct{}
	inFlight    map[int64]struct{}
}

func NewEngine(
	conf *structures.Config,
	policy *models.Policy,
	cards storage.CardRepositoryInterface,
	counters DayCounterManagerInterface,
	sessions GateSessionManagerInterface,
	outcomes ReviewOutcomeProcessorInterface,
	scheduler interfaces.CardSchedulerInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) EngineInterface {
	blocked := make(map[string]struct{}, len(conf.Gate.BlockedApps))
	for _, app := range conf.Gate.BlockedApps {
		blocked[app] = struct{}{}
	}
	return &Engine{
		policy:     policy,
		blocked:    blocked,
		cards:      cards,
		counters:   counters,
		sessions:   sessions,
		selector:   NewSelector(policy),
		outcomes:   outcomes,
		scheduler:  scheduler,
		logger:     logger,
		metrics:    metrics,
		apps:       make(map[string]*appState),
		quarantine: make(map[int64]struct{}),
		inFlight:   make(map[int64]struct{}),
	}
}

func (e *Engine) OnLaunchAttempt(appID string, now time.Time) (*models.Decision, error) {
	if _, ok := e.blocked[appID]; !ok {
		return e.decide(appID, models.ResultAllow, models.ReasonNotBlocked, nil), nil
	}

	st := e.appFor(appID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Coalesce: a review is already in flight for this app, repeat the same
	// item instead of spawning a second flow.
	if st.awaiting && st.pending != nil {
		return e.decide(appID, models.ResultPresentReview, models.ReasonReviewRequired, st.pending), nil
	}

	// An earlier answer committed its outcome but could not open the unlock
	// window; finish that before anything else.
	if st.unlockPending {
		if err := e.sessions.Open(appID, now); err != nil {
			return nil, err
		}
		st.unlockPending = false
		return e.decide(appID, models.ResultAllow, models.ReasonSessionActive, nil), nil
	}

	unlocked, err := e.sessions.IsUnlocked(appID, now)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return e.decide(appID, models.ResultAllow, models.ReasonSessionActive, nil), nil
	}

	item, err := e.selectItem(now)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Both pools exhausted: nothing left to study, so the gate does not
		// block indefinitely. Deliberately an ALLOW with its own reason so
		// the decision is distinguishable from a normal pass.
		e.logger.Warnf(providers.TypeGate, "No eligible item for %s, escape valve open", appID)
		return e.decide(appID, models.ResultAllow, models.ReasonEscapeValve, nil), nil
	}

	st.awaiting = true
	st.pending = item
	e.markInFlight(item.ID)
	return e.decide(appID, models.ResultPresentReview, models.ReasonReviewRequired, item), nil
}

func (e *Engine) OnAnswer(appID string, outcome models.Outcome, now time.Time) (*models.Decision, error) {
	st := e.appFor(appID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// The outcome already committed on a previous answer whose unlock write
	// failed; only the session open is retried.
	if st.unlockPending {
		if err := e.sessions.Open(appID, now); err != nil {
			return nil, err
		}
		st.unlockPending = false
		return e.decide(appID, models.ResultAllow, models.ReasonReviewCompleted, nil), nil
	}

	if !st.awaiting || st.pending == nil {
		return nil, models.ErrNoReviewPending
	}

	card, err := e.outcomes.Apply(st.pending.ID, outcome, now)
	if err != nil {
		if isCorrupt(err) {
			// Quarantine the card and drop the flow; the next attempt
			// selects a different card. Recovery is ResetScheduling.
			e.quarantineCard(st.pending.ID)
			e.logger.Errorf(providers.TypeReview, "Card %d quarantined: %s", st.pending.ID, err)
			st.awaiting = false
			st.pending = nil
		}
		// Storage failures keep the flow pending so the answer can be
		// retried; nothing was committed.
		return nil, err
	}

	// The outcome is durable from here on; nothing below may re-apply it.
	st.awaiting = false
	st.pending = nil

	e.mu.Lock()
	e.lastShownID = card.ID
	delete(e.inFlight, card.ID)
	e.mu.Unlock()

	if err := e.sessions.Open(appID, now); err != nil {
		st.unlockPending = true
		return nil, err
	}
	return e.decide(appID, models.ResultAllow, models.ReasonReviewCompleted, nil), nil
}

func (e *Engine) OnAbandon(appID string) error {
	st := e.appFor(appID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.awaiting || st.pending == nil {
		return models.ErrNoReviewPending
	}
	e.mu.Lock()
	delete(e.inFlight, st.pending.ID)
	e.mu.Unlock()
	st.awaiting = false
	st.pending = nil
	e.metrics.IncGateDecision(models.ResultDeny.String(), models.ReasonAbandoned.String())
	e.logger.Infof(providers.TypeGate, "Review abandoned for %s", appID)
	return nil
}

func (e *Engine) ForceLock(appID string) error {
	st := e.appFor(appID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.unlockPending = false
	return e.sessions.ForceLock(appID)
}

func (e *Engine) ResetScheduling(cardID int64, now time.Time) error {
	card, err := e.cards.GetByID(cardID)
	if err != nil {
		return err
	}
	state, dueAt := e.scheduler.NewState(now)
	card.SchedulingState = state
	card.DueAt = dueAt
	if err := e.cards.Update(card); err != nil {
		return err
	}

	e.mu.Lock()
	delete(e.quarantine, cardID)
	e.mu.Unlock()
	e.logger.Infof(providers.TypeReview, "Scheduling state reset for card %d", cardID)
	return nil
}

func (e *Engine) QuarantinedCards() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]int64, 0, len(e.quarantine))
	for id := range e.quarantine {
		ids = append(ids, id)
	}
	return ids
}

// selectItem loads the candidate set, drops quarantined cards and cards
// already pending in another app's flow, then runs the selection policy
// against today's ledger.
func (e *Engine) selectItem(now time.Time) (*models.Card, error) {
	start := time.Now()

	candidates, err := e.cards.SelectCandidates(now)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	lastShownID := e.lastShownID
	if len(e.quarantine) > 0 || len(e.inFlight) > 0 {
		filtered := candidates[:0]
		for _, card := range candidates {
			if _, bad := e.quarantine[card.ID]; bad {
				continue
			}
			if _, taken := e.inFlight[card.ID]; taken {
				continue
			}
			filtered = append(filtered, card)
		}
		candidates = filtered
	}
	e.mu.Unlock()

	counters, err := e.counters.Current(now)
	if err != nil {
		return nil, err
	}

	item := e.selector.Next(now, candidates, counters, lastShownID)
	e.metrics.ObserveSelectionDuration(time.Since(start))
	return item, nil
}

func (e *Engine) appFor(appID string) *appState {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.apps[appID]
	if !ok {
		st = &appState{}
		e.apps[appID] = st
	}
	return st
}

func (e *Engine) markInFlight(cardID int64) {
	e.mu.Lock()
	e.inFlight[cardID] = struct{}{}
	e.mu.Unlock()
}

func (e *Engine) quarantineCard(cardID int64) {
	e.mu.Lock()
	e.quarantine[cardID] = struct{}{}
	delete(e.inFlight, cardID)
	e.mu.Unlock()
}

func (e *Engine) decide(appID string, result models.DecisionResult, reason models.DecisionReason, item *models.Card) *models.Decision {
	e.metrics.IncGateDecision(result.String(), reason.String())
	e.logger.Debugf(providers.TypeGate, "Decision for %s: %s (%s)", appID, result, reason)
	return &models.Decision{Result: result, Reason: reason, Item: item}
}

func isCorrupt(err error) bool {
	return errors.Is(err, models.ErrSchedulingStateCorrupt)
}
