package gate

import (
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
	"wordgate/internal/storage"
)

type GateSessionManagerInterface interface {
	// Open creates an active unlock window for the app, replacing any prior
	// session.
	Open(appID string, now time.Time) error

	// IsUnlocked reports whether an active, unexpired session exists. Expiry
	// is detected lazily here: an expired session is deactivated as a side
	// effect of the read. In attempt-budget mode each allowed launch served
	// from the active session consumes one attempt.
	IsUnlocked(appID string, now time.Time) (bool, error)

	// ForceLock deactivates any session for the app unconditionally.
	ForceLock(appID string) error
}

type GateSessionManager struct {
	repo   storage.SessionRepositoryInterface
	policy *models.Policy
	logger providers.Logger
}

func NewGateSessionManager(repo storage.SessionRepositoryInterface, policy *models.Policy, logger providers.Logger) GateSessionManagerInterface {
	return &GateSessionManager{repo: repo, policy: policy, logger: logger}
}

func (m *GateSessionManager) Open(appID string, now time.Time) error {
	session := &models.GateSession{
		AppID:      appID,
		UnlockedAt: now,
		IsActive:   true,
	}
	if err := m.repo.Upsert(session); err != nil {
		return err
	}
	m.logger.Infof(providers.TypeGate, "Session opened for %s", appID)
	return nil
}

func (m *GateSessionManager) IsUnlocked(appID string, now time.Time) (bool, error) {
	session, err := m.repo.Get(appID)
	if err != nil {
		return false, err
	}
	if session == nil || !session.IsActive {
		return false, nil
	}

	// Interval 0: the window never expires on its own; only ForceLock or a
	// replacement session ends it.
	if m.policy.OverlayInterval <= 0 {
		return true, nil
	}

	switch m.policy.OverlayUnit {
	case models.OverlayUnitMinutes:
		age := now.Sub(session.UnlockedAt)
		if age > time.Duration(m.policy.OverlayInterval)*time.Minute {
			return false, m.expire(session)
		}
		return true, nil
	case models.OverlayUnitAttempts:
		if session.AttemptsUsed >= m.policy.OverlayInterval {
			return false, m.expire(session)
		}
		session.AttemptsUsed++
		if err := m.repo.Upsert(session); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (m *GateSessionManager) ForceLock(appID string) error {
	session, err := m.repo.Get(appID)
	if err != nil {
		return err
	}
	if session == nil || !session.IsActive {
		return nil
	}
	return m.expire(session)
}

func (m *GateSessionManager) expire(session *models.GateSession) error {
	session.IsActive = false
	if err := m.repo.Upsert(session); err != nil {
		return err
	}
	m.logger.Infof(providers.TypeGate, "Session expired for %s", session.AppID)
	return nil
}
