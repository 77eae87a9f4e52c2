package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"wordgate/internal/models"
)

type SessionRepositoryInterface interface {
	Get(appID string) (*models.GateSession, error)
	// Upsert replaces any existing session row for the app; sessions never
	// stack.
	Upsert(session *models.GateSession) error
	ListActive() ([]models.GateSession, error)
	ListAll() ([]models.GateSession, error)
}

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepositoryInterface {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Get(appID string) (*models.GateSession, error) {
	var session models.GateSession
	err := r.db.Get(&session, "SELECT * FROM gate_sessions WHERE app_id = $1", appID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get session", err)
	}
	return &session, nil
}

func (r *SessionRepository) Upsert(session *models.GateSession) error {
	_, err := r.db.Exec(`
		INSERT INTO gate_sessions (app_id, unlocked_at, is_active, attempts_used)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT(app_id) DO UPDATE SET
			unlocked_at = excluded.unlocked_at,
			is_active = excluded.is_active,
			attempts_used = excluded.attempts_used
	`, session.AppID, session.UnlockedAt, session.IsActive, session.AttemptsUsed)
	if err != nil {
		return storageErr("upsert session", err)
	}
	return nil
}

func (r *SessionRepository) ListAll() ([]models.GateSession, error) {
	var sessions []models.GateSession
	err := r.db.Select(&sessions, "SELECT * FROM gate_sessions ORDER BY app_id ASC")
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	return sessions, nil
}

func (r *SessionRepository) ListActive() ([]models.GateSession, error) {
	var sessions []models.GateSession
	err := r.db.Select(&sessions, "SELECT * FROM gate_sessions WHERE is_active = true ORDER BY app_id ASC")
	if err != nil {
		return nil, storageErr("list active sessions", err)
	}
	return sessions, nil
}
