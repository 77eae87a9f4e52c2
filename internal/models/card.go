package models

import (
	"time"
)

// CardKind drives quota accounting and mix policy.
type CardKind int

const (
	KindNew CardKind = iota
	KindReview
)

func (k CardKind) String() string {
	if k == KindNew {
		return "new"
	}
	return "review"
}

// Card is one learnable word/translation pair. SchedulingState is an opaque
// blob owned by the card scheduler; DueAt is the denormalized due time implied
// by it and the two are only ever written together.
type Card struct {
	ID              int64      `db:"id" json:"id"`
	Word            string     `db:"word" json:"word"`
	Translation     string     `db:"translation" json:"translation"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	LastShownAt     *time.Time `db:"last_shown_at" json:"last_shown_at,omitempty"`
	CorrectCount    int        `db:"correct_count" json:"correct_count"`
	IncorrectCount  int        `db:"incorrect_count" json:"incorrect_count"`
	SchedulingState []byte     `db:"scheduling_state" json:"scheduling_state"`
	DueAt           time.Time  `db:"due_at" json:"due_at"`
}

// Kind classifies the card: new until it has been shown once.
func (c *Card) Kind() CardKind {
	if c.LastShownAt == nil {
		return KindNew
	}
	return KindReview
}

// IsDue reports whether the card's scheduled review time has passed.
func (c *Card) IsDue(now time.Time) bool {
	return !c.DueAt.After(now)
}

// Clone returns a deep copy, used to keep mutation all-or-nothing in the
// outcome processor.
func (c *Card) Clone() *Card {
	dup := *c
	if c.LastShownAt != nil {
		t := *c.LastShownAt
		dup.LastShownAt = &t
	}
	if c.SchedulingState != nil {
		dup.SchedulingState = make([]byte, len(c.SchedulingState))
		copy(dup.SchedulingState, c.SchedulingState)
	}
	return &dup
}
