package models

import "time"

// DayCounters is the per-calendar-day usage ledger. DayKey is yyyymmdd in the
// clock's local zone, e.g. 20250824. Exactly one record is current at any
// instant; rollover replaces it lazily on first access of a new day.
type DayCounters struct {
	DayKey              int `db:"day_key" json:"day_key"`
	NewShown            int `db:"new_shown" json:"new_shown"`
	ReviewShown         int `db:"review_shown" json:"review_shown"`
	ReviewsSinceLastNew int `db:"reviews_since_last_new" json:"reviews_since_last_new"`
}

// DayKeyFor encodes a timestamp as yyyymmdd in its own location.
func DayKeyFor(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
