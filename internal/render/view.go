// Package render builds the complete presentation state handed to the
// rendering collaborator: verdict label, severity gauge and badge list are
// always produced together so no partial update is ever observable.
package render

import (
	"fmt"
	"math"

	"github.com/phishguard/phishguard/internal/classifier"
	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/policy"
	"github.com/phishguard/phishguard/internal/riskmap"
)

// Gauge color tokens, matching the reference UI's bands.
const (
	gaugeColorSevere   = "#EF4444"
	gaugeColorElevated = "#F59E0B"
	gaugeColorLow      = "#10B981"
	gaugeColorPending  = "#111827"
)

// errorDisplayLimit bounds the error description shown to the user.
const errorDisplayLimit = 50

// View is one atomic presentation state.
type View struct {
	Label string `json:"label"`

	// Tone is the color token for the verdict label.
	Tone string `json:"tone"`

	Tier model.Tier `json:"tier,omitempty"`

	// GaugePercent is the severity-scaled gauge value in [0,100].
	GaugePercent int    `json:"gauge_percent"`
	GaugeColor   string `json:"gauge_color"`
	ScoreText    string `json:"score_text"`

	Badges []model.Badge `json:"badges"`

	Mode policy.Mode `json:"mode"`

	// HighRecallThreshold is the display form of the active high-recall
	// boundary, formatted to four decimals.
	HighRecallThreshold string `json:"high_recall_threshold"`

	// Pending marks the transient state while a scoring call is in flight.
	Pending bool `json:"pending,omitempty"`
}

// Pending returns the presentation state shown while a submission is being
// scored.
func Pending(p *policy.ThresholdPolicy) *View {
	return &View{
		Label:               "Analyzing...",
		Tone:                "gray",
		GaugePercent:        0,
		GaugeColor:          gaugeColorPending,
		ScoreText:           "--%",
		Badges:              []model.Badge{{Text: "Processing...", Severity: model.SeverityGray}},
		Mode:                p.Mode(),
		HighRecallThreshold: thresholdText(p),
		Pending:             true,
	}
}

// Failure returns the error verdict for a failed scoring call. The
// description is truncated to a bounded display length.
func Failure(description string, p *policy.ThresholdPolicy) *View {
	return &View{
		Label:               "Error",
		Tone:                "red",
		GaugePercent:        0,
		GaugeColor:          gaugeColorLow,
		ScoreText:           "ERR",
		Badges:              []model.Badge{{Text: "Analysis Error: " + truncate(description, errorDisplayLimit) + "...", Severity: model.SeverityRed}},
		Mode:                p.Mode(),
		HighRecallThreshold: thresholdText(p),
	}
}

// FromResult builds the terminal presentation state for a scored result.
// When the result carries the input-validation sentinel, classification is
// bypassed entirely and a neutral "Check Input" view with a zero gauge is
// returned regardless of any probability present.
func FromResult(res *model.AnalysisResult, p *policy.ThresholdPolicy) *View {
	if res.InputRejected() {
		return &View{
			Label:               "Check Input",
			Tone:                "gray",
			GaugePercent:        0,
			GaugeColor:          gaugeColorLow,
			ScoreText:           "0%",
			Badges:              []model.Badge{{Text: res.RiskFactors[0], Severity: model.SeverityBlue}},
			Mode:                p.Mode(),
			HighRecallThreshold: thresholdText(p),
		}
	}

	out := classifier.Classify(res.Probability, p)
	percent := int(math.Round(out.Score * 100))

	badges := riskmap.MapFeatures(res.Features)
	if len(badges) == 0 {
		// Substitutions depend on classifier output, which is why the mapper
		// itself never produces them.
		if out.BaseTier == model.TierLow {
			badges = []model.Badge{riskmap.NoSignificantRisks()}
		} else {
			badges = []model.Badge{riskmap.ModelPatternsOnly()}
		}
	}

	return &View{
		Label:               out.Label,
		Tone:                labelTone(out.Tier),
		Tier:                out.Tier,
		GaugePercent:        percent,
		GaugeColor:          gaugeColor(percent),
		ScoreText:           fmt.Sprintf("%d%%", percent),
		Badges:              badges,
		Mode:                p.Mode(),
		HighRecallThreshold: thresholdText(p),
	}
}

func labelTone(t model.Tier) string {
	switch t {
	case model.TierSevere, model.TierStandardAlert, model.TierHighRecallAlert:
		return "red"
	case model.TierElevated:
		return "yellow"
	default:
		return "green"
	}
}

func gaugeColor(percent int) string {
	switch {
	case percent > 75:
		return gaugeColorSevere
	case percent > 40:
		return gaugeColorElevated
	default:
		return gaugeColorLow
	}
}

func thresholdText(p *policy.ThresholdPolicy) string {
	return fmt.Sprintf("%.4f", p.HighRecall())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
