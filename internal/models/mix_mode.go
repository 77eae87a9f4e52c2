package models

import "fmt"

// MixMode is the closed set of new-vs-review interleaving policies. Keep the
// switch statements over it exhaustive; a new mode must fail loudly at every
// call site, not fall through.
type MixMode int

const (
	MixModeMix MixMode = iota
	MixModeReviewsFirst
	MixModeNewFirst
)

func (m MixMode) String() string {
	switch m {
	case MixModeMix:
		return "MIX"
	case MixModeReviewsFirst:
		return "REVIEWS_FIRST"
	case MixModeNewFirst:
		return "NEW_FIRST"
	}
	return fmt.Sprintf("MixMode(%d)", int(m))
}

// ParseMixMode maps the config spelling to a MixMode.
func ParseMixMode(s string) (MixMode, error) {
	switch s {
	case "MIX":
		return MixModeMix, nil
	case "REVIEWS_FIRST":
		return MixModeReviewsFirst, nil
	case "NEW_FIRST":
		return MixModeNewFirst, nil
	}
	return MixModeMix, fmt.Errorf("unknown mix mode %q", s)
}

// OverlayUnit names how an unlock window is budgeted.
type OverlayUnit int

const (
	OverlayUnitMinutes OverlayUnit = iota
	OverlayUnitAttempts
)

func ParseOverlayUnit(s string) (OverlayUnit, error) {
	switch s {
	case "minutes":
		return OverlayUnitMinutes, nil
	case "attempts":
		return OverlayUnitAttempts, nil
	}
	return OverlayUnitMinutes, fmt.Errorf("unknown overlay unit %q", s)
}

// Policy is the engine-facing view of the learning and gate preferences,
// parsed once from config so the hot path never touches strings.
type Policy struct {
	NewPerDay           int
	ReviewPerDay        int
	MixMode             MixMode
	BuryImmediateRepeat bool
	OverlayInterval     int
	OverlayUnit         OverlayUnit
}
