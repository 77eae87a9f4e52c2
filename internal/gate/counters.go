package gate

import (
	"sync"
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/storage"
)

type DayCounterManagerInterface interface {
	// Current returns today's ledger, rolling over to a fresh zeroed record
	// when the local date has changed since the last access. Rollover is
	// lazy: there is no background timer.
	Current(now time.Time) (*models.DayCounters, error)

	// RecordShown increments the counter for the given kind, clamped at the
	// daily quota: a completion landing after the cap is already spent (two
	// apps racing on the last slot) leaves the ledger untouched, so the
	// quota is a hard upper bound however many flows are in flight. Called
	// once per completed review, never on abandonment.
	RecordShown(kind models.CardKind, now time.Time) error
}

// DayCounterManager owns the single current DayCounters record. All mutation
// goes through one mutex; the counters are global across apps, so this is the
// one lock in the engine that is not per-app.
type DayCounterManager struct {
	mu      sync.Mutex
	repo    storage.CountersRepositoryInterface
	policy  *models.Policy
	logger  providers.Logger
	current *models.DayCounters
}

func NewDayCounterManager(repo storage.CountersRepositoryInterface, policy *models.Policy, logger providers.Logger) DayCounterManagerInterface {
	m := &DayCounterManager{repo: repo, policy: policy, logger: logger}
	// Day keys only grow, so the newest stored record is the active one.
	// Warm the cache with it; a stale key falls through to the rollover
	// path on first access, and a load error is simply retried there.
	if latest, err := repo.GetLatest(); err == nil {
		m.current = latest
	}
	return m
}

func (m *DayCounterManager) Current(now time.Time) (*models.DayCounters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters, err := m.currentLocked(now)
	if err != nil {
		return nil, err
	}
	snapshot := *counters
	return &snapshot, nil
}

func (m *DayCounterManager) RecordShown(kind models.CardKind, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters, err := m.currentLocked(now)
	if err != nil {
		return err
	}

	updated := *counters
	switch kind {
	case models.KindNew:
		if updated.NewShown >= m.policy.NewPerDay {
			m.logger.Warnf(providers.TypeGate, "New quota spent, completion not counted")
			return nil
		}
		updated.NewShown++
		updated.ReviewsSinceLastNew = 0
	case models.KindReview:
		if updated.ReviewShown >= m.policy.ReviewPerDay {
			m.logger.Warnf(providers.TypeGate, "Review quota spent, completion not counted")
			return nil
		}
		updated.ReviewShown++
		updated.ReviewsSinceLastNew++
	}

	if err := m.repo.Update(&updated); err != nil {
		return err
	}
	*m.current = updated
	return nil
}

// currentLocked resolves the record for now's day key, creating a zeroed one
// on rollover. Past records stay untouched in storage. Must hold m.mu.
func (m *DayCounterManager) currentLocked(now time.Time) (*models.DayCounters, error) {
	dayKey := models.DayKeyFor(now)
	if m.current != nil && m.current.DayKey == dayKey {
		return m.current, nil
	}

	stored, err := m.repo.GetByKey(dayKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = &models.DayCounters{DayKey: dayKey}
		if err := m.repo.Insert(stored); err != nil {
			return nil, err
		}
		if m.current != nil {
			m.logger.Infof(providers.TypeGate, "Day rollover: %d -> %d", m.current.DayKey, dayKey)
		}
	}
	m.current = stored
	return m.current, nil
}
