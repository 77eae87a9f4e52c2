package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCard_KindNewUntilShown(t *testing.T) {
	card := &Card{ID: 1}
	assert.Equal(t, KindNew, card.Kind())

	shown := time.Now()
	card.LastShownAt = &shown
	assert.Equal(t, KindReview, card.Kind())
}

func TestCard_IsDue(t *testing.T) {
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)

	assert.True(t, (&Card{DueAt: now}).IsDue(now))
	assert.True(t, (&Card{DueAt: now.Add(-time.Second)}).IsDue(now))
	assert.False(t, (&Card{DueAt: now.Add(time.Second)}).IsDue(now))
}

func TestCard_CloneIsDeep(t *testing.T) {
	shown := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	card := &Card{
		ID:              1,
		Word:            "Haus",
		LastShownAt:     &shown,
		SchedulingState: []byte(`{"v":1}`),
	}

	dup := card.Clone()
	dup.SchedulingState[0] = 'X'
	later := shown.Add(time.Hour)
	dup.LastShownAt = &later

	assert.Equal(t, byte('{'), card.SchedulingState[0])
	assert.Equal(t, shown, *card.LastShownAt)
}

func TestDayKeyFor(t *testing.T) {
	assert.Equal(t, 20250824, DayKeyFor(time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 20250824, DayKeyFor(time.Date(2025, 8, 24, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, 20250825, DayKeyFor(time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 20260101, DayKeyFor(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestDayKeyFor_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 23:00 UTC on the 24th is already the 25th at UTC+10.
	utc := time.Date(2025, 8, 24, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 20250825, DayKeyFor(utc.In(loc)))
}

func TestParseMixMode(t *testing.T) {
	for spelling, expected := range map[string]MixMode{
		"MIX":           MixModeMix,
		"REVIEWS_FIRST": MixModeReviewsFirst,
		"NEW_FIRST":     MixModeNewFirst,
	} {
		mode, err := ParseMixMode(spelling)
		assert.NoError(t, err)
		assert.Equal(t, expected, mode)
		assert.Equal(t, spelling, mode.String())
	}

	_, err := ParseMixMode("SHUFFLE")
	assert.Error(t, err)
}

func TestParseOverlayUnit(t *testing.T) {
	unit, err := ParseOverlayUnit("minutes")
	assert.NoError(t, err)
	assert.Equal(t, OverlayUnitMinutes, unit)

	unit, err = ParseOverlayUnit("attempts")
	assert.NoError(t, err)
	assert.Equal(t, OverlayUnitAttempts, unit)

	_, err = ParseOverlayUnit("hours")
	assert.Error(t, err)
}
