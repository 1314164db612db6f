package demoscorer

import (
	"testing"

	"github.com/phishguard/phishguard/internal/model"
)

func TestFeaturize_BrandLookalike(t *testing.T) {
	t.Parallel()
	fs, err := Featurize("http://paypa1-login.verify.example.com/account")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}

	if !fs.Flag(model.FeatBrandMismatch) {
		t.Error("expected BrandMismatchHint for paypa1 pattern")
	}
	if !fs.Flag(model.FeatHasRedirectWord) {
		t.Error("expected HasRedirectWord for login/verify keywords")
	}
	if fs.Number(model.FeatIsHTTPS) != 0 {
		t.Error("http URL must not count as HTTPS")
	}
	if fs.Flag(model.FeatIsDomainIP) {
		t.Error("hostname is not an IP")
	}
	// Host: paypa1-login.verify.example.com -> subdomains paypa1-login.verify
	if got := fs.Number(model.FeatNoOfSubDomain); got != 2 {
		t.Errorf("NoOfSubDomain = %v, want 2", got)
	}
}

func TestFeaturize_IPHost(t *testing.T) {
	t.Parallel()
	fs, err := Featurize("http://192.168.10.5/login")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}
	if !fs.Flag(model.FeatIsDomainIP) {
		t.Error("expected IsDomainIP for dotted-quad host")
	}
	if fs.Number(model.FeatNoOfSubDomain) != 0 {
		t.Error("IP hosts have no subdomains")
	}
}

func TestFeaturize_TLDCategory(t *testing.T) {
	t.Parallel()
	common, err := Featurize("https://shop.example.com")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}
	if got := common.Category(model.FeatTLD); got != "com" {
		t.Errorf("TLD = %q, want com", got)
	}

	uncommon, err := Featurize("https://example.zzzz")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}
	if got := uncommon.Category(model.FeatTLD); got != "other" {
		t.Errorf("TLD = %q, want other", got)
	}
}

func TestFeaturize_ObfuscationSignals(t *testing.T) {
	t.Parallel()
	fs, err := Featurize("http://user@example.com/p%41th")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}
	if !fs.Flag(model.FeatHasObfuscation) {
		t.Error("expected HasObfuscation for @ and % escapes")
	}
	if !fs.Flag(model.FeatContainsAt) {
		t.Error("expected ContainsAt")
	}
	if fs.Number(model.FeatNoOfObfuscated) != 1 {
		t.Errorf("NoOfObfuscatedChar = %v, want 1", fs.Number(model.FeatNoOfObfuscated))
	}
}

func TestFeaturize_SchemelessInput(t *testing.T) {
	t.Parallel()
	fs, err := Featurize("example.co.uk/page")
	if err != nil {
		t.Fatalf("Featurize: %v", err)
	}
	if got := fs.Category(model.FeatTLD); got != "co.uk" {
		t.Errorf("TLD = %q, want co.uk", got)
	}
	if fs.Number(model.FeatIsHTTPS) != 0 {
		t.Error("schemeless input defaults to http")
	}
}

// ─── URL helpers ───────────────────────────────────────────────────────

func TestExtractURLs(t *testing.T) {
	t.Parallel()
	urls := extractURLs(`click here https://evil.test/a and www.other.test/b now`)
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %v", urls)
	}
	if urls[0] != "https://evil.test/a" {
		t.Errorf("first url = %q", urls[0])
	}
}

func TestLooksLikeBareDomain(t *testing.T) {
	t.Parallel()
	if !looksLikeBareDomain("paypal.com") {
		t.Error("paypal.com should pass")
	}
	if looksLikeBareDomain("hello world") {
		t.Error("free text should fail")
	}
}

func TestIsIPv4(t *testing.T) {
	t.Parallel()
	tests := []struct {
		host string
		want bool
	}{
		{"10.0.0.1", true},
		{"255.255.255.255", true},
		{"256.1.1.1", false},
		{"1.2.3", false},
		{"example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isIPv4(tt.host); got != tt.want {
			t.Errorf("isIPv4(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestAsciiHost_Punycode(t *testing.T) {
	t.Parallel()
	if got := asciiHost("Bücher.example"); got != "xn--bcher-kva.example" {
		t.Errorf("asciiHost = %q", got)
	}
}
