package models

import "time"

// GateSession is a temporary unlocked window for one application. At most one
// active session exists per app; re-unlocking replaces the prior session.
// AttemptsUsed only matters when the overlay policy counts launch attempts.
type GateSession struct {
	AppID        string    `db:"app_id" json:"app_id"`
	UnlockedAt   time.Time `db:"unlocked_at" json:"unlocked_at"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	AttemptsUsed int       `db:"attempts_used" json:"attempts_used"`
}
