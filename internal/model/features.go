package model

// FeatureKey names one feature in the scoring service's feature vector. The
// string values match the training schema of the upstream model, including
// its historical misspellings ("Degit", "Spacial"), which are part of the
// wire contract.
type FeatureKey string

const (
	FeatURLLength        FeatureKey = "URLLength"
	FeatDomainLength     FeatureKey = "DomainLength"
	FeatIsDomainIP       FeatureKey = "IsDomainIP"
	FeatTLD              FeatureKey = "TLD"
	FeatTLDLength        FeatureKey = "TLDLength"
	FeatNoOfSubDomain    FeatureKey = "NoOfSubDomain"
	FeatHasObfuscation   FeatureKey = "HasObfuscation"
	FeatNoOfObfuscated   FeatureKey = "NoOfObfuscatedChar"
	FeatObfuscationRatio FeatureKey = "ObfuscationRatio"
	FeatNoOfLetters      FeatureKey = "NoOfLettersInURL"
	FeatLetterRatio      FeatureKey = "LetterRatioInURL"
	FeatNoOfDigits       FeatureKey = "NoOfDegitsInURL"
	FeatDigitRatio       FeatureKey = "DegitRatioInURL"
	FeatNoOfEquals       FeatureKey = "NoOfEqualsInURL"
	FeatNoOfQMark        FeatureKey = "NoOfQMarkInURL"
	FeatNoOfAmpersand    FeatureKey = "NoOfAmpersandInURL"
	FeatNoOfOtherSpecial FeatureKey = "NoOfOtherSpecialCharsInURL"
	FeatSpecialCharRatio FeatureKey = "SpacialCharRatioInURL"
	FeatIsHTTPS          FeatureKey = "IsHTTPS"
	FeatContainsAt       FeatureKey = "ContainsAt"
	FeatHasRedirectWord  FeatureKey = "HasRedirectWord"
	FeatBrandMismatch    FeatureKey = "BrandMismatchHint"
)

// FeatureSet is the feature mapping as delivered by the scoring service.
// Values are 0/1 indicators, non-negative measurements, or categorical
// strings (the TLD class). Every accessor has a defined default so absent
// keys never require call-site checks.
type FeatureSet map[string]any

// Number returns the numeric value for key, or 0 when the key is absent or
// not numeric. JSON decoding delivers numbers as float64; int is accepted for
// values constructed in-process.
func (fs FeatureSet) Number(key FeatureKey) float64 {
	v, ok := fs[string(key)]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Flag returns true when the 0/1 indicator for key equals 1.
func (fs FeatureSet) Flag(key FeatureKey) bool {
	return fs.Number(key) == 1
}

// Category returns the categorical string for key, or "" when absent or not
// a string.
func (fs FeatureSet) Category(key FeatureKey) string {
	if s, ok := fs[string(key)].(string); ok {
		return s
	}
	return ""
}

// Set stores a value under key. Used by in-process feature producers; results
// decoded from JSON populate the map directly.
func (fs FeatureSet) Set(key FeatureKey, v any) {
	fs[string(key)] = v
}

// Features builds a FeatureSet from typed keys, so in-process producers and
// tests never spell out the raw schema strings.
func Features(kv map[FeatureKey]any) FeatureSet {
	fs := make(FeatureSet, len(kv))
	for k, v := range kv {
		fs[string(k)] = v
	}
	return fs
}
