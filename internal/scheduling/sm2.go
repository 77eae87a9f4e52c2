package scheduling

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"wordgate/internal/models"
	"wordgate/internal/scheduling/interfaces"
)

const stateVersion = 1

// sm2State is the versioned payload stored in Card.SchedulingState. Only this
// package knows its shape.
type sm2State struct {
	Version     int     `json:"v"`
	Easiness    float64 `json:"easiness"`
	Interval    int     `json:"interval"`
	Repetitions int     `json:"repetitions"`
}

// SM2Scheduler implements the SuperMemo-2 algorithm over binary
// correct/incorrect outcomes. Correct answers walk a ladder of preset
// intervals before switching to the easiness-factor formula; incorrect
// answers make the card due again immediately.
type SM2Scheduler struct {
	MaxInterval      int
	InitialIntervals []int
}

func NewSM2Scheduler() interfaces.CardSchedulerInterface {
	return &SM2Scheduler{
		MaxInterval:      365,
		InitialIntervals: []int{0, 1, 2, 3, 7, 10, 15, 20, 30},
	}
}

func (s *SM2Scheduler) NewState(now time.Time) ([]byte, time.Time) {
	state := sm2State{
		Version:  stateVersion,
		Easiness: 2.5,
	}
	// A fresh sm2State always marshals.
	payload, _ := json.Marshal(state)
	return payload, now
}

func (s *SM2Scheduler) Schedule(state []byte, outcome models.Outcome, now time.Time) ([]byte, time.Time, error) {
	var st sm2State
	if err := json.Unmarshal(state, &st); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", models.ErrSchedulingStateCorrupt, err)
	}
	if st.Version != stateVersion {
		return nil, time.Time{}, fmt.Errorf("%w: unsupported state version %d", models.ErrSchedulingStateCorrupt, st.Version)
	}

	quality := qualityFor(outcome)

	st.Easiness += 0.1 - (5.0-float64(quality))*(0.08+(5.0-float64(quality))*0.02)
	if st.Easiness < 1.3 {
		st.Easiness = 1.3
	}

	if outcome == models.OutcomeCorrect {
		st.Repetitions++
		if st.Repetitions < len(s.InitialIntervals) {
			st.Interval = s.InitialIntervals[st.Repetitions]
		} else {
			st.Interval = int(float64(st.Interval) * st.Easiness)
		}
		if st.Interval > s.MaxInterval {
			st.Interval = s.MaxInterval
		}
	} else {
		// Reset progress; the card comes back in the same day.
		st.Repetitions = 0
		st.Interval = 0
	}

	payload, err := json.Marshal(st)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", models.ErrSchedulingStateCorrupt, err)
	}

	dueAt := now
	if st.Interval > 0 {
		dueAt = now.AddDate(0, 0, st.Interval)
	}
	return payload, dueAt, nil
}

func qualityFor(outcome models.Outcome) int {
	if outcome == models.OutcomeCorrect {
		return 4
	}
	return 1
}
