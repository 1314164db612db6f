// Package demoscorer is a stand-in for the external scoring service. It
// reproduces the service's wire contract and feature derivation with a
// transparent additive heuristic in place of the trained model, so the
// presentation engine can be demoed and tested end-to-end without ML
// infrastructure.
package demoscorer

import (
	"context"
	"strings"

	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/policy"
	"github.com/phishguard/phishguard/internal/riskmap"
)

// Engine scores submitted text the way the real service's /api/score does:
// extract a URL, featurize it, score it, and explain it.
type Engine struct {
	cfg    Config
	logger logging.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(cfg Config, logger logging.Logger) *Engine {
	if cfg.HighRecallThreshold <= 0 || cfg.HighRecallThreshold >= 1 {
		cfg.HighRecallThreshold = DefaultConfig().HighRecallThreshold
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "DemoScorer"}),
	}
}

// Score produces an AnalysisResult for the submitted text. Text with no URL
// and no bare-domain shape yields the input-validation sentinel instead of a
// scored result.
func (e *Engine) Score(_ context.Context, text string) (*model.AnalysisResult, error) {
	hr := e.cfg.HighRecallThreshold
	input := strings.TrimSpace(text)

	urls := extractURLs(input)
	if len(urls) == 0 {
		if looksLikeBareDomain(input) {
			urls = []string{input}
		} else {
			e.logger.Debug("no url in input")
			return &model.AnalysisResult{
				Probability:         0,
				HighRecallThreshold: &hr,
				Features:            model.FeatureSet{},
				RiskFactors:         []string{model.NoValidURLSentinel},
			}, nil
		}
	}

	target := urls[0]
	features, err := Featurize(target)
	if err != nil {
		return nil, err
	}

	probability := heuristicProbability(features)

	// Echo the human-readable factors the way the real service does; they
	// use the same rule table the presentation side maps badges with.
	var factors []string
	for _, b := range riskmap.MapFeatures(features) {
		factors = append(factors, b.Text)
	}

	e.logger.Info("scored url",
		logging.Field{Key: "url", Value: target},
		logging.Field{Key: "probability", Value: probability})

	return &model.AnalysisResult{
		Probability:         probability,
		IsPhishingStd:       probability > policy.StandardThreshold,
		IsPhishingHR:        probability > hr,
		HighRecallThreshold: &hr,
		Features:            features,
		RiskFactors:         factors,
	}, nil
}

// heuristicProbability is a deliberately transparent substitute for the
// calibrated gradient-boosting model: each suspicious trait adds a fixed
// increment. It is not a phishing detector, only a demo signal source.
func heuristicProbability(fs model.FeatureSet) float64 {
	p := 0.04
	if fs.Flag(model.FeatBrandMismatch) {
		p += 0.45
	}
	if fs.Flag(model.FeatIsDomainIP) {
		p += 0.30
	}
	if fs.Flag(model.FeatHasRedirectWord) {
		p += 0.18
	}
	if fs.Flag(model.FeatHasObfuscation) || fs.Flag(model.FeatContainsAt) {
		p += 0.15
	}
	if fs.Number(model.FeatIsHTTPS) == 0 {
		p += 0.08
	}
	if fs.Number(model.FeatNoOfSubDomain) > 2 {
		p += 0.07
	}
	if fs.Number(model.FeatSpecialCharRatio) > 0.25 {
		p += 0.06
	}
	if fs.Number(model.FeatURLLength) > 75 {
		p += 0.04
	}
	if fs.Category(model.FeatTLD) == "other" && !fs.Flag(model.FeatIsDomainIP) {
		p += 0.05
	}
	if p > 0.99 {
		p = 0.99
	}
	return p
}
