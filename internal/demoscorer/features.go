package demoscorer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/phishguard/phishguard/internal/model"
)

// tldCategories is the category space the training schema kept; everything
// else collapses into "other".
var tldCategories = map[string]struct{}{
	"com": {}, "org": {}, "net": {}, "edu": {}, "gov": {}, "mil": {},
	"io": {}, "co": {}, "info": {}, "biz": {}, "de": {}, "uk": {},
	"co.uk": {}, "ru": {}, "fr": {}, "jp": {}, "co.jp": {}, "it": {},
	"nl": {}, "au": {}, "com.au": {}, "br": {}, "com.br": {}, "in": {},
	"ca": {}, "es": {}, "app": {}, "dev": {},
}

var (
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	otherRe  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

var redirectWords = []string{
	"redirect", "verify", "login", "account", "update", "signin", "auth", "confirm",
}

var brandMismatchPatterns = []string{
	"paypa1", "secure-paypa", "verify-account", "confirm-account",
	"support-", "-login", "account-update",
}

// Featurize derives the lexical feature vector for one URL, mirroring the
// training-time featurizer: counts and ratios over the raw string, host
// structure flags, and the keyword/brand heuristics the model was trained
// with.
func Featurize(raw string) (model.FeatureSet, error) {
	u := ensureScheme(raw)

	parsed, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	host := asciiHost(parsed.Hostname())

	isIP := isIPv4(host)
	subdomain, _, suffix := splitHost(host)

	tldRaw := strings.ToLower(suffix)
	if tldRaw == "" {
		tldRaw = "unknown"
	}

	urlLen := len(u)
	domainLabel := host

	isHTTPS := 0
	if strings.EqualFold(parsed.Scheme, "https") {
		isHTTPS = 1
	}

	noSub := 0
	if !isIP && subdomain != "" {
		noSub = strings.Count(subdomain, ".") + 1
	}

	letters := len(letterRe.FindAllString(u, -1))
	digits := len(digitRe.FindAllString(u, -1))
	others := len(otherRe.FindAllString(u, -1))

	var letterRatio, digitRatio, specialRatio float64
	if urlLen > 0 {
		letterRatio = float64(letters) / float64(urlLen)
		digitRatio = float64(digits) / float64(urlLen)
		specialRatio = float64(others) / float64(urlLen)
	}

	upper := strings.ToUpper(u)
	escapes := len(escapeRe.FindAllString(upper, -1))
	hasObfuscation := 0
	if strings.Contains(u, "@") || escapes > 0 {
		hasObfuscation = 1
	}
	var obfuscationRatio float64
	if urlLen > 0 {
		obfuscationRatio = float64(escapes) / float64(urlLen)
	}

	lower := strings.ToLower(u)
	containsAt := 0
	if strings.Contains(u, "@") {
		containsAt = 1
	}
	hasRedirectWord := 0
	for _, w := range redirectWords {
		if strings.Contains(lower, w) {
			hasRedirectWord = 1
			break
		}
	}
	brandMismatch := 0
	for _, p := range brandMismatchPatterns {
		if strings.Contains(lower, p) {
			brandMismatch = 1
			break
		}
	}

	tldNorm := "other"
	if _, ok := tldCategories[tldRaw]; ok {
		tldNorm = tldRaw
	}

	flag := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}

	fs := model.FeatureSet{}
	fs.Set(model.FeatURLLength, float64(urlLen))
	fs.Set(model.FeatDomainLength, float64(len(domainLabel)))
	fs.Set(model.FeatIsDomainIP, flag(isIP))
	fs.Set(model.FeatTLD, tldNorm)
	fs.Set(model.FeatTLDLength, float64(len(tldRaw)))
	fs.Set(model.FeatNoOfSubDomain, float64(noSub))
	fs.Set(model.FeatHasObfuscation, float64(hasObfuscation))
	fs.Set(model.FeatNoOfObfuscated, float64(escapes))
	fs.Set(model.FeatObfuscationRatio, obfuscationRatio)
	fs.Set(model.FeatNoOfLetters, float64(letters))
	fs.Set(model.FeatLetterRatio, letterRatio)
	fs.Set(model.FeatNoOfDigits, float64(digits))
	fs.Set(model.FeatDigitRatio, digitRatio)
	fs.Set(model.FeatNoOfEquals, float64(strings.Count(u, "=")))
	fs.Set(model.FeatNoOfQMark, float64(strings.Count(u, "?")))
	fs.Set(model.FeatNoOfAmpersand, float64(strings.Count(u, "&")))
	fs.Set(model.FeatNoOfOtherSpecial, float64(others))
	fs.Set(model.FeatSpecialCharRatio, specialRatio)
	fs.Set(model.FeatIsHTTPS, float64(isHTTPS))
	fs.Set(model.FeatContainsAt, float64(containsAt))
	fs.Set(model.FeatHasRedirectWord, float64(hasRedirectWord))
	fs.Set(model.FeatBrandMismatch, float64(brandMismatch))
	return fs, nil
}
