// Package classifier converts a continuous maliciousness score into the
// discrete verdict shown to the user.
package classifier

import (
	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/policy"
)

// Fixed severity bands, independent of the active threshold policy.
const (
	severeBand   = 0.75
	elevatedBand = 0.40
)

// Outcome is the result of classifying one score.
type Outcome struct {
	// Score is the input score after read-clamping to [0,1].
	Score float64

	// BaseTier comes from the fixed bands alone.
	BaseTier model.Tier

	// Tier is the final tier after the threshold-alert override.
	Tier model.Tier

	// Label is the user-facing verdict for Tier.
	Label string
}

// Classify is a pure function from (score, policy) to a verdict. It is total
// for any finite score: out-of-range input is clamped, never rejected.
//
// The alert override fires only when the score clears the active threshold
// AND the fixed bands call it low. The high-recall boundary is expected to
// sit below the elevated band, so borderline scores the bands would wave
// through get surfaced instead of labeled benign. A score that is already
// elevated or severe keeps its band tier.
func Classify(score float64, p *policy.ThresholdPolicy) Outcome {
	s := clamp(score)

	base := model.TierLow
	switch {
	case s >= severeBand:
		base = model.TierSevere
	case s >= elevatedBand:
		base = model.TierElevated
	}

	tier := base
	if s >= p.ActiveThreshold() && base == model.TierLow {
		if p.Mode() == policy.ModeHighRecall {
			tier = model.TierHighRecallAlert
		} else {
			tier = model.TierStandardAlert
		}
	}

	return Outcome{
		Score:    s,
		BaseTier: base,
		Tier:     tier,
		Label:    tier.Label(),
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
