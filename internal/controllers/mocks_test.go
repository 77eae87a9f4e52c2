package controllers

import (
	"sync"
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
)

// Shared hand-rolled mocks for the controller tests. testutil is not used
// here to keep the package free of an import back-edge.

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// mockEngine implements gate.EngineInterface with injectable responses.
type mockEngine struct {
	AttemptDecision *models.Decision
	AttemptErr      error
	AnswerDecision  *models.Decision
	AnswerErr       error
	AbandonErr      error
	LockErr         error
	ResetErr        error
	Quarantine      []int64

	AbandonCalls int
	LockCalls    int
	ResetCalls   []int64
}

func (m *mockEngine) OnLaunchAttempt(_ string, _ time.Time) (*models.Decision, error) {
	return m.AttemptDecision, m.AttemptErr
}

func (m *mockEngine) OnAnswer(_ string, _ models.Outcome, _ time.Time) (*models.Decision, error) {
	return m.AnswerDecision, m.AnswerErr
}

func (m *mockEngine) OnAbandon(_ string) error {
	m.AbandonCalls++
	return m.AbandonErr
}

func (m *mockEngine) ForceLock(_ string) error {
	m.LockCalls++
	return m.LockErr
}

func (m *mockEngine) ResetScheduling(cardID int64, _ time.Time) error {
	m.ResetCalls = append(m.ResetCalls, cardID)
	return m.ResetErr
}

func (m *mockEngine) QuarantinedCards() []int64 { return m.Quarantine }

// mockCounters implements gate.DayCounterManagerInterface.
type mockCounters struct {
	Counters   *models.DayCounters
	CurrentErr error
}

func (m *mockCounters) Current(now time.Time) (*models.DayCounters, error) {
	if m.CurrentErr != nil {
		return nil, m.CurrentErr
	}
	if m.Counters != nil {
		return m.Counters, nil
	}
	return &models.DayCounters{DayKey: models.DayKeyFor(now)}, nil
}

func (m *mockCounters) RecordShown(_ models.CardKind, _ time.Time) error { return nil }

// mockVocabService implements services.VocabularyServiceInterface.
type mockVocabService struct {
	Words    []models.Card
	AddErr   error
	ListErr  error
	CountErr error
}

func (m *mockVocabService) AddWord(word, translation string, now time.Time) (*models.Card, error) {
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	card := models.Card{
		ID:          int64(len(m.Words) + 1),
		Word:        word,
		Translation: translation,
		CreatedAt:   now,
		DueAt:       now,
	}
	m.Words = append(m.Words, card)
	return &card, nil
}

func (m *mockVocabService) ListWords() ([]models.Card, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Words, nil
}

func (m *mockVocabService) CountWords() (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return len(m.Words), nil
}

// mockSessions implements storage.SessionRepositoryInterface.
type mockSessions struct {
	Active  []models.GateSession
	ListErr error
}

func (m *mockSessions) Get(_ string) (*models.GateSession, error) { return nil, nil }
func (m *mockSessions) Upsert(_ *models.GateSession) error        { return nil }

func (m *mockSessions) ListActive() ([]models.GateSession, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Active, nil
}

func (m *mockSessions) ListAll() ([]models.GateSession, error) {
	return m.Active, nil
}
