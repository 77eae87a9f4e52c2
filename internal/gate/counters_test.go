package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordgate/internal/models"
	"wordgate/internal/testutil"
)

func TestDayCounterManager_CreatesZeroedRecord(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	counters, err := m.Current(now)
	require.NoError(t, err)

	assert.Equal(t, 20250824, counters.DayKey)
	assert.Equal(t, 0, counters.NewShown)
	assert.Equal(t, 0, counters.ReviewShown)

	stored, err := repo.GetByKey(20250824)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestDayCounterManager_RecordShownNew(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindNew, now))

	counters, err := m.Current(now)
	require.NoError(t, err)
	assert.Equal(t, 1, counters.NewShown)
	assert.Equal(t, 2, counters.ReviewShown)
	// A new card resets the since-last-new run.
	assert.Equal(t, 0, counters.ReviewsSinceLastNew)
}

func TestDayCounterManager_ReviewsSinceLastNewAccumulates(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.RecordShown(models.KindNew, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))

	counters, err := m.Current(now)
	require.NoError(t, err)
	assert.Equal(t, 3, counters.ReviewsSinceLastNew)
}

func TestDayCounterManager_LazyRollover(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})

	day1 := time.Date(2025, 8, 24, 23, 50, 0, 0, time.UTC)
	require.NoError(t, m.RecordShown(models.KindNew, day1))
	require.NoError(t, m.RecordShown(models.KindReview, day1))

	// First access after midnight creates a fresh record.
	day2 := day1.Add(20 * time.Minute)
	counters, err := m.Current(day2)
	require.NoError(t, err)
	assert.Equal(t, 20250825, counters.DayKey)
	assert.Equal(t, 0, counters.NewShown)
	assert.Equal(t, 0, counters.ReviewShown)

	// The old day's record is retained untouched.
	old, err := repo.GetByKey(20250824)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, 1, old.NewShown)
	assert.Equal(t, 1, old.ReviewShown)
}

func TestDayCounterManager_SameDayAcrossRestart(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	m1 := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	require.NoError(t, m1.RecordShown(models.KindNew, now))

	// A second manager over the same store picks up the existing record
	// instead of zeroing it.
	m2 := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	counters, err := m2.Current(now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, counters.NewShown)
}

func TestDayCounterManager_CurrentReturnsSnapshot(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	counters, err := m.Current(now)
	require.NoError(t, err)
	counters.NewShown = 99

	fresh, err := m.Current(now)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.NewShown)
}

func TestDayCounterManager_QuotaIsHardCap(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	policy := defaultPolicy()
	policy.NewPerDay = 1
	policy.ReviewPerDay = 2
	m := NewDayCounterManager(repo, policy, &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	// Completions past the cap are accepted but leave the ledger untouched.
	require.NoError(t, m.RecordShown(models.KindNew, now))
	require.NoError(t, m.RecordShown(models.KindNew, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))
	require.NoError(t, m.RecordShown(models.KindReview, now))

	counters, err := m.Current(now)
	require.NoError(t, err)
	assert.Equal(t, 1, counters.NewShown)
	assert.Equal(t, 2, counters.ReviewShown)
}

func TestDayCounterManager_UncountedCompletionDoesNotWrite(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	policy := defaultPolicy()
	policy.ReviewPerDay = 1
	m := NewDayCounterManager(repo, policy, &testutil.MockLogger{})
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.RecordShown(models.KindReview, now))
	writes := repo.Updates
	require.NoError(t, m.RecordShown(models.KindReview, now))
	assert.Equal(t, writes, repo.Updates)
}

func TestDayCounterManager_WarmLoadsLatestRecord(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(&models.DayCounters{DayKey: 20250824, NewShown: 3, ReviewShown: 7}))

	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})

	// The record was loaded at construction; a broken key lookup afterwards
	// does not matter for the current day.
	repo.GetErr = models.ErrStorageUnavailable
	counters, err := m.Current(now)
	require.NoError(t, err)
	assert.Equal(t, 3, counters.NewShown)
	assert.Equal(t, 7, counters.ReviewShown)
}

func TestDayCounterManager_StorageErrorPropagates(t *testing.T) {
	repo := testutil.NewMockCountersRepository()
	repo.InsertErr = models.ErrStorageUnavailable
	m := NewDayCounterManager(repo, defaultPolicy(), &testutil.MockLogger{})

	_, err := m.Current(time.Now())
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}
