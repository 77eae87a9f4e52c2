package scheduling

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordgate/internal/models"
)

func mustState(t *testing.T, st sm2State) []byte {
	t.Helper()
	payload, err := json.Marshal(st)
	require.NoError(t, err)
	return payload
}

func decodeState(t *testing.T, payload []byte) sm2State {
	t.Helper()
	var st sm2State
	require.NoError(t, json.Unmarshal(payload, &st))
	return st
}

func TestNewState_DueImmediately(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	payload, dueAt := s.NewState(now)

	assert.Equal(t, now, dueAt)
	st := decodeState(t, payload)
	assert.Equal(t, stateVersion, st.Version)
	assert.Equal(t, 2.5, st.Easiness)
	assert.Equal(t, 0, st.Repetitions)
}

func TestSchedule_FirstCorrectFollowsLadder(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload, _ := s.NewState(now)

	next, dueAt, err := s.Schedule(payload, models.OutcomeCorrect, now)
	require.NoError(t, err)

	st := decodeState(t, next)
	assert.Equal(t, 1, st.Repetitions)
	assert.Equal(t, 1, st.Interval)
	assert.Equal(t, now.AddDate(0, 0, 1), dueAt)
}

func TestSchedule_LadderProgression(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload, _ := s.NewState(now)

	intervals := []int{1, 2, 3, 7, 10, 15, 20, 30}
	for i, expected := range intervals {
		var dueAt time.Time
		var err error
		payload, dueAt, err = s.Schedule(payload, models.OutcomeCorrect, now)
		require.NoError(t, err, "step %d", i)
		st := decodeState(t, payload)
		assert.Equal(t, expected, st.Interval, "step %d", i)
		assert.Equal(t, now.AddDate(0, 0, expected), dueAt, "step %d", i)
	}
}

func TestSchedule_BeyondLadderUsesEasiness(t *testing.T) {
	s := NewSM2Scheduler().(*SM2Scheduler)
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload := mustState(t, sm2State{
		Version:     stateVersion,
		Easiness:    2.5,
		Interval:    30,
		Repetitions: 8,
	})

	next, _, err := s.Schedule(payload, models.OutcomeCorrect, now)
	require.NoError(t, err)

	st := decodeState(t, next)
	assert.Equal(t, 9, st.Repetitions)
	// interval = int(30 * easiness) with easiness already nudged for quality 4
	assert.Greater(t, st.Interval, 30)
}

func TestSchedule_IntervalCappedAtMax(t *testing.T) {
	s := NewSM2Scheduler().(*SM2Scheduler)
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload := mustState(t, sm2State{
		Version:     stateVersion,
		Easiness:    2.5,
		Interval:    300,
		Repetitions: 20,
	})

	next, dueAt, err := s.Schedule(payload, models.OutcomeCorrect, now)
	require.NoError(t, err)

	st := decodeState(t, next)
	assert.Equal(t, s.MaxInterval, st.Interval)
	assert.Equal(t, now.AddDate(0, 0, s.MaxInterval), dueAt)
}

func TestSchedule_IncorrectResetsProgress(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload := mustState(t, sm2State{
		Version:     stateVersion,
		Easiness:    2.5,
		Interval:    15,
		Repetitions: 6,
	})

	next, dueAt, err := s.Schedule(payload, models.OutcomeIncorrect, now)
	require.NoError(t, err)

	st := decodeState(t, next)
	assert.Equal(t, 0, st.Repetitions)
	assert.Equal(t, 0, st.Interval)
	// Due again right away, same day.
	assert.Equal(t, now, dueAt)
}

func TestSchedule_EasinessNeverBelowFloor(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	payload := mustState(t, sm2State{
		Version:  stateVersion,
		Easiness: 1.3,
	})

	for i := 0; i < 5; i++ {
		var err error
		payload, _, err = s.Schedule(payload, models.OutcomeIncorrect, now)
		require.NoError(t, err)
	}
	st := decodeState(t, payload)
	assert.GreaterOrEqual(t, st.Easiness, 1.3)
}

func TestSchedule_MalformedStateIsCorrupt(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Now()

	_, _, err := s.Schedule([]byte(`{not json`), models.OutcomeCorrect, now)
	assert.ErrorIs(t, err, models.ErrSchedulingStateCorrupt)
}

func TestSchedule_UnknownVersionIsCorrupt(t *testing.T) {
	s := NewSM2Scheduler()
	now := time.Now()
	payload := mustState(t, sm2State{Version: 99, Easiness: 2.5})

	_, _, err := s.Schedule(payload, models.OutcomeCorrect, now)
	assert.ErrorIs(t, err, models.ErrSchedulingStateCorrupt)
}
