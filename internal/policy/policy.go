package policy

// Mode selects which of the two decision thresholds is active.
type Mode string

const (
	ModeStandard   Mode = "standard"
	ModeHighRecall Mode = "high_recall"
)

// StandardThreshold is the fixed standard decision boundary.
const StandardThreshold = 0.5

// DefaultHighRecallThreshold is used until the scoring service supplies one.
const DefaultHighRecallThreshold = 0.1

// ThresholdPolicy owns the two decision boundaries and the selected mode.
// It is process-lifetime state, mutated only by the orchestrator (which also
// serializes access); the type itself carries no locking.
type ThresholdPolicy struct {
	highRecall float64
	mode       Mode
}

// New returns a policy in Standard mode with the default high-recall boundary.
func New() *ThresholdPolicy {
	return &ThresholdPolicy{
		highRecall: DefaultHighRecallThreshold,
		mode:       ModeStandard,
	}
}

// SetHighRecallThreshold accepts only values in the open interval (0,1).
// Invalid values are ignored and the prior boundary retained; the return
// value reports whether the update was applied.
func (p *ThresholdPolicy) SetHighRecallThreshold(v float64) bool {
	if v <= 0 || v >= 1 {
		return false
	}
	p.highRecall = v
	return true
}

// SetMode switches between Standard and HighRecall. It affects only
// subsequent classifications, never cached results.
func (p *ThresholdPolicy) SetMode(m Mode) {
	if m == ModeStandard || m == ModeHighRecall {
		p.mode = m
	}
}

// Mode returns the selected mode.
func (p *ThresholdPolicy) Mode() Mode {
	return p.mode
}

// HighRecall returns the last-known high-recall boundary.
func (p *ThresholdPolicy) HighRecall() float64 {
	return p.highRecall
}

// ActiveThreshold returns the boundary selected by the current mode.
func (p *ThresholdPolicy) ActiveThreshold() float64 {
	if p.mode == ModeHighRecall {
		return p.highRecall
	}
	return StandardThreshold
}

// ParseMode maps the wire representation to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeStandard:
		return ModeStandard, true
	case ModeHighRecall:
		return ModeHighRecall, true
	}
	return "", false
}
