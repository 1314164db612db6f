package model

// Tier is the internal severity classification behind the user-facing
// verdict. The two alert tiers exist only for scores that the fixed bands
// would call low but that sit above the active decision threshold.
type Tier string

const (
	TierLow             Tier = "low"
	TierElevated        Tier = "elevated"
	TierSevere          Tier = "severe"
	TierStandardAlert   Tier = "standard_alert"
	TierHighRecallAlert Tier = "high_recall_alert"
)

// Label returns the verdict string shown to the user for this tier.
func (t Tier) Label() string {
	switch t {
	case TierSevere:
		return "High Risk"
	case TierElevated:
		return "Suspicious"
	case TierHighRecallAlert:
		return "ALERT (High Recall)"
	case TierStandardAlert:
		return "Suspicious (Standard)"
	default:
		return "Likely Benign"
	}
}
