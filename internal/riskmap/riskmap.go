// Package riskmap turns the scoring service's opaque feature mapping into
// ordered, human-readable risk badges.
package riskmap

import (
	"fmt"
	"math"

	"github.com/phishguard/phishguard/internal/model"
)

// MapFeatures evaluates the rule table in fixed priority order and appends a
// badge for every rule whose predicate holds. Rules are independent: several
// may fire, none suppresses another. Absent keys use the accessors' defaults,
// so the function is total over any feature mapping.
func MapFeatures(fs model.FeatureSet) []model.Badge {
	var badges []model.Badge

	add := func(text string, sev model.Severity) {
		badges = append(badges, model.Badge{Text: text, Severity: sev})
	}

	if fs.Flag(model.FeatBrandMismatch) {
		add("Potential Brand Lookalike", model.SeverityRed)
	}
	if fs.Flag(model.FeatIsDomainIP) {
		add("Uses IP Address Host", model.SeverityRed)
	}
	if fs.Flag(model.FeatHasObfuscation) || fs.Flag(model.FeatContainsAt) {
		add("Contains Obfuscation (@ or %)", model.SeverityYellow)
	}
	if fs.Flag(model.FeatHasRedirectWord) {
		add("Contains Sensitive Keywords (login, verify etc.)", model.SeverityYellow)
	}
	if n := fs.Number(model.FeatNoOfSubDomain); n > 2 {
		add(fmt.Sprintf("Multiple Subdomains (%d)", int(math.Round(n))), model.SeverityYellow)
	}
	if fs.Number(model.FeatIsHTTPS) == 0 {
		add("Not HTTPS", model.SeverityYellow)
	}
	if fs.Number(model.FeatSpecialCharRatio) > 0.25 {
		add("High Special Character Ratio", model.SeverityYellow)
	}
	if fs.Number(model.FeatURLLength) > 75 {
		add("Very Long URL", model.SeverityBlue)
	}
	if fs.Category(model.FeatTLD) == "other" && !fs.Flag(model.FeatIsDomainIP) {
		add("Uncommon/Invalid TLD", model.SeverityBlue)
	}

	return badges
}

// NoSignificantRisks is the substitute badge when no rule fired and the
// score's base tier is low.
func NoSignificantRisks() model.Badge {
	return model.Badge{Text: "No significant risk factors identified", Severity: model.SeverityGray}
}

// ModelPatternsOnly is the substitute badge when no rule fired but the score
// is not low: the model is trusted even without explainable features.
func ModelPatternsOnly() model.Badge {
	return model.Badge{Text: "Risk score based on complex model patterns", Severity: model.SeverityYellow}
}
