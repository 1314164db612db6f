package demoscorer

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

var (
	urlRe        = regexp.MustCompile(`(?i)https?://[^\s<>"]+|www\.[^\s<>"]+`)
	bareDomainRe = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	schemeRe     = regexp.MustCompile(`^[a-zA-Z]+://`)
	ipv4Re       = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	escapeRe     = regexp.MustCompile(`%[0-9A-F]{2}`)
)

// extractURLs finds URL-shaped substrings in free text.
func extractURLs(text string) []string {
	return urlRe.FindAllString(text, -1)
}

// looksLikeBareDomain reports whether text as a whole is a schemeless domain
// (e.g. "paypal.com"), accepted as a scan target even without a URL match.
func looksLikeBareDomain(text string) bool {
	return bareDomainRe.MatchString(text)
}

// ensureScheme prefixes http:// when the input carries no scheme, so parsing
// is consistent for bare domains and www-style inputs.
func ensureScheme(raw string) string {
	u := strings.TrimSpace(raw)
	if !schemeRe.MatchString(u) {
		return "http://" + u
	}
	return u
}

// isIPv4 reports whether host is a dotted-quad IPv4 literal.
func isIPv4(host string) bool {
	if host == "" || !ipv4Re.MatchString(host) {
		return false
	}
	for _, part := range strings.Split(host, ".") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// asciiHost lowercases host and punycode-encodes any internationalized
// labels so feature extraction sees the same form a resolver would.
func asciiHost(host string) string {
	h := strings.ToLower(host)
	if ascii, err := idna.Lookup.ToASCII(h); err == nil && ascii != "" {
		return ascii
	}
	return h
}

// Multi-label public suffixes the splitter knows about. Anything else is
// treated as a single-label suffix.
var multiPartSuffixes = map[string]struct{}{
	"co.uk": {}, "org.uk": {}, "gov.uk": {}, "ac.uk": {},
	"com.au": {}, "net.au": {}, "org.au": {},
	"co.jp": {}, "co.in": {}, "com.br": {}, "com.cn": {},
}

// splitHost breaks a hostname into subdomain, registrable domain and suffix.
// IP literals return the host as the domain with empty subdomain/suffix.
func splitHost(host string) (subdomain, domain, suffix string) {
	if host == "" || isIPv4(host) {
		return "", host, ""
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", host, ""
	}

	suffixLen := 1
	if len(labels) >= 3 {
		candidate := labels[len(labels)-2] + "." + labels[len(labels)-1]
		if _, ok := multiPartSuffixes[candidate]; ok {
			suffixLen = 2
		}
	}

	suffix = strings.Join(labels[len(labels)-suffixLen:], ".")
	domainIdx := len(labels) - suffixLen - 1
	if domainIdx < 0 {
		return "", "", suffix
	}
	domain = labels[domainIdx]
	subdomain = strings.Join(labels[:domainIdx], ".")
	return subdomain, domain, suffix
}
