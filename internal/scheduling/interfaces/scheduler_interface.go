package interfaces

import (
	"time"

	"wordgate/internal/models"
)

// CardSchedulerInterface wraps the spaced-repetition algorithm. State is an
// opaque payload: the engine stores it verbatim and never parses it, so the
// algorithm can be swapped without touching cards already persisted.
type CardSchedulerInterface interface {
	// NewState returns a fresh state for a card that has never been
	// reviewed, due immediately.
	NewState(now time.Time) ([]byte, time.Time)

	// Schedule applies an answer outcome to a card's state and returns the
	// updated state plus the next due time. A state payload that cannot be
	// interpreted fails with models.ErrSchedulingStateCorrupt.
	Schedule(state []byte, outcome models.Outcome, now time.Time) ([]byte, time.Time, error)
}
