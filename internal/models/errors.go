package models

import "errors"

var (
	// ErrStorageUnavailable wraps any persistence failure. The gate fails
	// closed on it: callers see a challenge or an error, never a silent allow.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchedulingStateCorrupt means a card's opaque scheduling blob cannot
	// be interpreted. The card is quarantined, not the whole gate.
	ErrSchedulingStateCorrupt = errors.New("scheduling state corrupt")

	// ErrNoReviewPending is returned when an answer or abandon arrives for an
	// app that has no review in flight.
	ErrNoReviewPending = errors.New("no review pending for app")

	ErrCardNotFound  = errors.New("card not found")
	ErrDuplicateWord = errors.New("word already exists")
)
