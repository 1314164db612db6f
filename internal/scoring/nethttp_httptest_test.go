package scoring_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/scoring"
	"github.com/phishguard/phishguard/internal/testutil"
)

// ─── Score: real HTTP round-trip via httptest ───────────────────────────

func TestNetHTTPScorer_Score_DecodesResult(t *testing.T) {
	t.Parallel()
	hr := 0.1
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/score" {
			t.Errorf("expected /api/score, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Text != "http://paypa1.example.com" {
			t.Errorf("unexpected text %q", body.Text)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.AnalysisResult{
			Probability:         0.82,
			IsPhishingStd:       true,
			IsPhishingHR:        true,
			HighRecallThreshold: &hr,
			Features:            model.FeatureSet{"IsHTTPS": float64(0)},
			RiskFactors:         []string{"Brand Mismatch Hint"},
		})
	}))
	defer ts.Close()

	client, err := scoring.NewNetHTTPScorer(scoring.Config{BaseURL: ts.URL}, &testutil.DummyLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	res, err := client.Score(context.Background(), "http://paypa1.example.com")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if res.Probability != 0.82 {
		t.Errorf("probability = %v, want 0.82", res.Probability)
	}
	if !res.IsPhishingStd || !res.IsPhishingHR {
		t.Error("verdict flags lost in decoding")
	}
	if res.HighRecallThreshold == nil || *res.HighRecallThreshold != 0.1 {
		t.Error("threshold lost in decoding")
	}
	if res.Features.Number(model.FeatIsHTTPS) != 0 {
		t.Error("features lost in decoding")
	}
}

func TestNetHTTPScorer_Score_Non2xxReturnsStatusError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "model not loaded")
	}))
	defer ts.Close()

	client, err := scoring.NewNetHTTPScorer(scoring.Config{BaseURL: ts.URL}, &testutil.DummyLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	_, err = client.Score(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var statusErr *scoring.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", statusErr.StatusCode)
	}
	if statusErr.Body != "model not loaded" {
		t.Errorf("body = %q", statusErr.Body)
	}
}

func TestNetHTTPScorer_Score_ConnectionRefused_ReturnsError(t *testing.T) {
	t.Parallel()
	client, err := scoring.NewNetHTTPScorer(
		scoring.Config{BaseURL: "http://127.0.0.1:1"}, // port 1 is unlikely to be open
		&testutil.DummyLogger{},
		&http.Client{Timeout: 1 * time.Second})
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	if _, err := client.Score(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error for connection refused")
	}
}

func TestNetHTTPScorer_Score_ContextCanceled_ReturnsError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client, err := scoring.NewNetHTTPScorer(scoring.Config{BaseURL: ts.URL}, &testutil.DummyLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if _, err := client.Score(ctx, "https://example.com"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNetHTTPScorer_Score_MalformedJSON_ReturnsError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{not json")
	}))
	defer ts.Close()

	client, err := scoring.NewNetHTTPScorer(scoring.Config{BaseURL: ts.URL}, &testutil.DummyLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	if _, err := client.Score(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestNewNetHTTPScorer_RequiresBaseURL(t *testing.T) {
	t.Parallel()
	if _, err := scoring.NewNetHTTPScorer(scoring.Config{}, &testutil.DummyLogger{}, nil); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestNewNetHTTPScorer_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{}")
	}))
	defer ts.Close()

	client, err := scoring.NewNetHTTPScorer(scoring.Config{BaseURL: ts.URL + "/"}, &testutil.DummyLogger{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPScorer: %v", err)
	}
	defer client.Close()

	if _, err := client.Score(context.Background(), "x"); err != nil {
		t.Fatalf("Score: %v", err)
	}
	if gotPath != "/api/score" {
		t.Errorf("path = %q, want /api/score", gotPath)
	}
}
