package gate

import (
	"wordgate/internal/models"
	"wordgate/internal/structures"
)

// NewPolicy parses the learning and gate sections of the config into the
// engine-facing policy once, at wiring time. The validator has already
// checked ranges and enum spellings; parse errors here mean the two drifted
// apart.
func NewPolicy(conf *structures.Config) (*models.Policy, error) {
	mixMode, err := models.ParseMixMode(conf.Learning.MixMode)
	if err != nil {
		return nil, err
	}
	overlayUnit, err := models.ParseOverlayUnit(conf.Gate.OverlayUnit)
	if err != nil {
		return nil, err
	}
	return &models.Policy{
		NewPerDay:           conf.Learning.NewPerDay,
		ReviewPerDay:        conf.Learning.ReviewPerDay,
		MixMode:             mixMode,
		BuryImmediateRepeat: conf.Learning.BuryImmediateRepeat,
		OverlayInterval:     conf.Gate.OverlayInterval,
		OverlayUnit:         overlayUnit,
	}, nil
}
