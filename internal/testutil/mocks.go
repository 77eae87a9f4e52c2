package testutil

import (
	"sort"
	"strings"
	"sync"
	"time"

	"wordgate/internal/models"
	"wordgate/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountByLevel returns how many entries were logged at the given level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCardRepository is an in-memory storage.CardRepositoryInterface with
// injectable failures.
type MockCardRepository struct {
	mu     sync.Mutex
	cards  map[int64]*models.Card
	nextID int64

	CreateErr error
	GetErr    error
	SelectErr error
	UpdateErr error
	// UpdateHook runs before each Update with the incoming card; returning an
	// error aborts the write.
	UpdateHook func(card *models.Card) error
	Updates    int
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{cards: make(map[int64]*models.Card), nextID: 1}
}

func (m *MockCardRepository) Create(card *models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, existing := range m.cards {
		if strings.EqualFold(existing.Word, card.Word) {
			return models.ErrDuplicateWord
		}
	}
	card.ID = m.nextID
	m.nextID++
	m.cards[card.ID] = card.Clone()
	return nil
}

func (m *MockCardRepository) GetByID(id int64) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	card, ok := m.cards[id]
	if !ok {
		return nil, models.ErrCardNotFound
	}
	return card.Clone(), nil
}

func (m *MockCardRepository) GetByWord(word string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, card := range m.cards {
		if strings.EqualFold(card.Word, word) {
			return card.Clone(), nil
		}
	}
	return nil, models.ErrCardNotFound
}

func (m *MockCardRepository) SelectCandidates(now time.Time) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SelectErr != nil {
		return nil, m.SelectErr
	}
	var out []models.Card
	for _, card := range m.cards {
		if card.LastShownAt == nil || !card.DueAt.After(now) {
			out = append(out, *card.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockCardRepository) ListAll() ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SelectErr != nil {
		return nil, m.SelectErr
	}
	var out []models.Card
	for _, card := range m.cards {
		out = append(out, *card.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCardRepository) Update(card *models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.UpdateHook != nil {
		if err := m.UpdateHook(card); err != nil {
			return err
		}
	}
	if _, ok := m.cards[card.ID]; !ok {
		return models.ErrCardNotFound
	}
	m.cards[card.ID] = card.Clone()
	m.Updates++
	return nil
}

func (m *MockCardRepository) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cards), nil
}

// MockCountersRepository is an in-memory storage.CountersRepositoryInterface.
type MockCountersRepository struct {
	mu   sync.Mutex
	rows map[int]*models.DayCounters

	GetErr    error
	InsertErr error
	UpdateErr error
	Updates   int
}

func NewMockCountersRepository() *MockCountersRepository {
	return &MockCountersRepository{rows: make(map[int]*models.DayCounters)}
}

func (m *MockCountersRepository) GetLatest() (*models.DayCounters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.DayCounters
	for _, row := range m.rows {
		if latest == nil || row.DayKey > latest.DayKey {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	dup := *latest
	return &dup, nil
}

func (m *MockCountersRepository) GetByKey(dayKey int) (*models.DayCounters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[dayKey]
	if !ok {
		return nil, nil
	}
	dup := *row
	return &dup, nil
}

func (m *MockCountersRepository) Insert(counters *models.DayCounters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	dup := *counters
	m.rows[counters.DayKey] = &dup
	return nil
}

func (m *MockCountersRepository) Update(counters *models.DayCounters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	dup := *counters
	m.rows[counters.DayKey] = &dup
	m.Updates++
	return nil
}

func (m *MockCountersRepository) ListAll() ([]models.DayCounters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DayCounters
	for _, row := range m.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayKey < out[j].DayKey })
	return out, nil
}

// MockSessionRepository is an in-memory storage.SessionRepositoryInterface.
type MockSessionRepository struct {
	mu   sync.Mutex
	rows map[string]*models.GateSession

	GetErr    error
	UpsertErr error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{rows: make(map[string]*models.GateSession)}
}

func (m *MockSessionRepository) Get(appID string) (*models.GateSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[appID]
	if !ok {
		return nil, nil
	}
	dup := *row
	return &dup, nil
}

func (m *MockSessionRepository) Upsert(session *models.GateSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	dup := *session
	m.rows[session.AppID] = &dup
	return nil
}

func (m *MockSessionRepository) ListActive() ([]models.GateSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GateSession
	for _, row := range m.rows {
		if row.IsActive {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out, nil
}

func (m *MockSessionRepository) ListAll() ([]models.GateSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GateSession
	for _, row := range m.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out, nil
}

// MockScheduler implements interfaces.CardSchedulerInterface with injectable
// behavior. Defaults: fresh state is due immediately, a correct answer pushes
// the card out a day, an incorrect one makes it due again right away.
type MockScheduler struct {
	NewStateFn func(now time.Time) ([]byte, time.Time)
	ScheduleFn func(state []byte, outcome models.Outcome, now time.Time) ([]byte, time.Time, error)
}

func (m *MockScheduler) NewState(now time.Time) ([]byte, time.Time) {
	if m.NewStateFn != nil {
		return m.NewStateFn(now)
	}
	return []byte(`{"v":1}`), now
}

func (m *MockScheduler) Schedule(state []byte, outcome models.Outcome, now time.Time) ([]byte, time.Time, error) {
	if m.ScheduleFn != nil {
		return m.ScheduleFn(state, outcome, now)
	}
	if outcome == models.OutcomeCorrect {
		return state, now.Add(24 * time.Hour), nil
	}
	return state, now, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	GateDecisions map[string]int // "result/reason"
	Outcomes      map[string]int // "outcome/kind"
	CacheHits     int
	CacheMisses   int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		GateDecisions: make(map[string]int),
		Outcomes:      make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncGateDecision(result, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GateDecisions[result+"/"+reason]++
}

func (m *MockMetrics) IncReviewOutcome(outcome, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[outcome+"/"+kind]++
}

func (m *MockMetrics) ObserveSelectionDuration(_ time.Duration)   {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
