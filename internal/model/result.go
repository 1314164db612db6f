package model

// NoValidURLSentinel is the reserved risk-factor string the scoring service
// places first in RiskFactors when the submitted text contained nothing it
// could score. It signals an input-validation miss, not a scored result.
const NoValidURLSentinel = "No valid URL found in input."

// AnalysisResult is the scoring service's response for a single submission.
// Probability and Features arrive precomputed; this service never derives
// them itself.
type AnalysisResult struct {
	// Probability is the likelihood the input is malicious, in [0,1].
	Probability float64 `json:"probability"`

	// IsPhishingStd reports Probability against the service's standard threshold.
	IsPhishingStd bool `json:"is_phishing_std"`

	// IsPhishingHR reports Probability against the service's high-recall threshold.
	IsPhishingHR bool `json:"is_phishing_hr"`

	// HighRecallThreshold is the server-supplied high-recall decision boundary.
	// Absent means "keep whatever you had before".
	HighRecallThreshold *float64 `json:"high_recall_threshold,omitempty"`

	// Features maps feature names to indicator/measurement/categorical values.
	// No key is guaranteed present.
	Features FeatureSet `json:"features,omitempty"`

	// RiskFactors is an ordered list of human-readable explanations. Its first
	// element may be NoValidURLSentinel.
	RiskFactors []string `json:"risk_factors,omitempty"`
}

// InputRejected reports whether the service flagged the submission as
// containing no scorable URL.
func (r *AnalysisResult) InputRejected() bool {
	return r != nil && len(r.RiskFactors) > 0 && r.RiskFactors[0] == NoValidURLSentinel
}
