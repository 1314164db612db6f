package demoscorer

import (
	"context"
	"testing"

	"github.com/phishguard/phishguard/internal/interfaces"
	"github.com/phishguard/phishguard/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultConfig(), interfaces.NewTestLogger(false))
}

func TestEngine_ScoreBrandLookalike(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	res, err := engine.Score(context.Background(), "check this out http://paypa1-login.example.com/verify")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if res.InputRejected() {
		t.Fatal("valid URL must not hit the input sentinel")
	}
	if res.Probability <= 0.5 {
		t.Errorf("brand lookalike over http should score high, got %v", res.Probability)
	}
	if !res.IsPhishingStd || !res.IsPhishingHR {
		t.Error("expected both verdict flags set")
	}
	if res.HighRecallThreshold == nil || *res.HighRecallThreshold != 0.20 {
		t.Error("response must advertise the configured high-recall threshold")
	}
	if len(res.RiskFactors) == 0 {
		t.Error("expected explanatory risk factors")
	}
}

func TestEngine_ScoreIPHost(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	res, err := engine.Score(context.Background(), "http://203.0.113.9/pay")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !res.Features.Flag(model.FeatIsDomainIP) {
		t.Error("expected IsDomainIP feature")
	}
	if res.Probability <= 0.20 {
		t.Errorf("IP host over http should clear the high-recall bar, got %v", res.Probability)
	}
}

func TestEngine_BareDomainFallback(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	res, err := engine.Score(context.Background(), "paypal.com")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.InputRejected() {
		t.Error("bare domain should be scored, not rejected")
	}
}

func TestEngine_NoURLSentinel(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	res, err := engine.Score(context.Background(), "just some words with no link")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !res.InputRejected() {
		t.Fatal("expected the input-validation sentinel")
	}
	if res.Probability != 0 {
		t.Errorf("sentinel result carries probability 0, got %v", res.Probability)
	}
	if res.RiskFactors[0] != model.NoValidURLSentinel {
		t.Errorf("sentinel text = %q", res.RiskFactors[0])
	}
	if res.HighRecallThreshold == nil {
		t.Error("sentinel result still advertises the threshold")
	}
}

func TestEngine_BenignURLStaysLow(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	res, err := engine.Score(context.Background(), "https://www.example.com")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.IsPhishingStd {
		t.Errorf("plain https URL should stay under the standard threshold, got %v", res.Probability)
	}
}

func TestNewEngine_RejectsBadThreshold(t *testing.T) {
	t.Parallel()
	engine := NewEngine(Config{Port: 8000, HighRecallThreshold: 1.5}, interfaces.NewTestLogger(false))
	res, err := engine.Score(context.Background(), "https://www.example.com")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if *res.HighRecallThreshold != DefaultConfig().HighRecallThreshold {
		t.Errorf("out-of-range threshold must fall back to default, got %v", *res.HighRecallThreshold)
	}
}
