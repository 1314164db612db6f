package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/scanner"
	"github.com/phishguard/phishguard/internal/server"
	"github.com/phishguard/phishguard/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func highRiskResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Probability:         0.82,
		IsPhishingStd:       true,
		IsPhishingHR:        true,
		HighRecallThreshold: floatPtr(0.1),
		Features: model.Features(map[model.FeatureKey]any{
			model.FeatBrandMismatch: float64(1),
			model.FeatIsHTTPS:       float64(1),
		}),
	}
}

func newTestServer(t *testing.T, scorer *testutil.DummyScorer) *server.Server {
	t.Helper()

	if scorer == nil {
		scorer = &testutil.DummyScorer{Result: highRiskResult()}
	}
	cfg := server.Config{
		ListenAddr: ":0",
		Logger:     &testutil.DummyLogger{},
		Scorer:     scorer,
	}

	s, err := server.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// waitFor polls until cond returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/health", "")

	origin := rec.Header().Get("Access-Control-Allow-Origin")
	if origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_OptionsPreflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "OPTIONS", "/api/analyze", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on OPTIONS")
	}
}

// ─── Health ────────────────────────────────────────────────────────────

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// ─── Analyze ───────────────────────────────────────────────────────────

func TestServer_Analyze(t *testing.T) {
	t.Parallel()
	scorer := &testutil.DummyScorer{Result: highRiskResult()}
	s := newTestServer(t, scorer)

	rec := doJSON(t, s, "POST", "/api/analyze", `{"text":"http://paypa1-login.com/verify"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view map[string]any
	decodeJSON(t, rec, &view)
	if view["label"] != "High Risk" {
		t.Errorf("label = %v", view["label"])
	}
	if view["gauge_percent"] != float64(82) {
		t.Errorf("gauge = %v", view["gauge_percent"])
	}
	if got := scorer.Submitted(); len(got) != 1 || got[0] != "http://paypa1-login.com/verify" {
		t.Errorf("submitted = %v", got)
	}
}

func TestServer_Analyze_InvalidJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/analyze", `{invalid}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_Analyze_EmptyText(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/analyze", `{"text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ─── Result ────────────────────────────────────────────────────────────

func TestServer_GetResult_BeforeAnyAnalysis(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/result", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_GetResult_AfterAnalysis(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	doJSON(t, s, "POST", "/api/analyze", `{"text":"http://paypa1.com"}`)

	rec := doJSON(t, s, "GET", "/api/result", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view map[string]any
	decodeJSON(t, rec, &view)
	if view["label"] != "High Risk" {
		t.Errorf("label = %v", view["label"])
	}
}

// ─── Policy ────────────────────────────────────────────────────────────

func TestServer_GetPolicy_Defaults(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/api/policy", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var p server.PolicyResponse
	decodeJSON(t, rec, &p)
	if p.Mode != "standard" {
		t.Errorf("mode = %q", p.Mode)
	}
	if p.StandardThreshold != 0.5 {
		t.Errorf("standard threshold = %v", p.StandardThreshold)
	}
	if p.HighRecallThreshold != 0.1 {
		t.Errorf("high-recall threshold = %v", p.HighRecallThreshold)
	}
}

func TestServer_SetMode(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PUT", "/api/policy/mode", `{"mode":"high_recall"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, "GET", "/api/policy", "")
	var p server.PolicyResponse
	decodeJSON(t, rec, &p)
	if p.Mode != "high_recall" {
		t.Errorf("mode = %q", p.Mode)
	}
}

func TestServer_SetMode_Unknown(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PUT", "/api/policy/mode", `{"mode":"paranoid"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ─── Scan sessions over REST ───────────────────────────────────────────

func TestServer_ScanLifecycle(t *testing.T) {
	t.Parallel()
	scorer := &testutil.DummyScorer{Result: highRiskResult()}
	s := newTestServer(t, scorer)

	rec := doJSON(t, s, "POST", "/api/scan/start", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var started server.ScanStartResponse
	decodeJSON(t, rec, &started)
	if started.SessionID == "" {
		t.Fatal("expected a session id")
	}

	waitFor(t, func() bool {
		rec := doJSON(t, s, "GET", "/api/scan", "")
		var status server.ScanStatusResponse
		decodeJSON(t, rec, &status)
		return status.State == string(scanner.StateScanning)
	}, "scanning state")

	// A second session is rejected while one is running.
	rec = doJSON(t, s, "POST", "/api/scan/start", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	// Feed a decode; it flows through analysis.
	rec = doJSON(t, s, "POST", "/api/scan/decode", `{"text":"http://paypa1.com/qr"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	waitFor(t, func() bool {
		return len(scorer.Submitted()) == 1
	}, "decoded text submission")

	waitFor(t, func() bool {
		rec := doJSON(t, s, "GET", "/api/scan", "")
		var status server.ScanStatusResponse
		decodeJSON(t, rec, &status)
		return status.State == string(scanner.StateIdle)
	}, "session teardown")
}

func TestServer_ScanStop(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	doJSON(t, s, "POST", "/api/scan/start", "")
	waitFor(t, func() bool {
		rec := doJSON(t, s, "GET", "/api/scan", "")
		var status server.ScanStatusResponse
		decodeJSON(t, rec, &status)
		return status.State == string(scanner.StateScanning)
	}, "scanning state")

	rec := doJSON(t, s, "POST", "/api/scan/stop", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	waitFor(t, func() bool {
		rec := doJSON(t, s, "GET", "/api/scan", "")
		var status server.ScanStatusResponse
		decodeJSON(t, rec, &status)
		return status.State == string(scanner.StateIdle)
	}, "session teardown")
}

func TestServer_ScanDecode_NoActiveSession(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/api/scan/decode", `{"text":"http://example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

// ─── WebSockets ────────────────────────────────────────────────────────

func dialWS(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestServer_ScanWS_GrantDecodeFlow(t *testing.T) {
	t.Parallel()
	scorer := &testutil.DummyScorer{Result: highRiskResult()}
	s := newTestServer(t, scorer)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dialWS(t, ts, "/ws/scan")

	// Wait for the permission request, then grant.
	var sawScanning bool
	for !sawScanning {
		var ev scanner.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read event: %v", err)
		}
		switch ev.State {
		case scanner.StateRequestingPermission:
			if err := conn.WriteJSON(map[string]string{"type": "granted"}); err != nil {
				t.Fatalf("write granted: %v", err)
			}
		case scanner.StateScanning:
			sawScanning = true
		}
	}

	if err := conn.WriteJSON(map[string]string{"type": "decode", "text": "http://paypa1.com/qr"}); err != nil {
		t.Fatalf("write decode: %v", err)
	}

	var decoded bool
	for !decoded {
		var ev scanner.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read event: %v", err)
		}
		if ev.Type == scanner.EventDecoded {
			decoded = true
			if ev.Text != "http://paypa1.com/qr" {
				t.Errorf("decoded text = %q", ev.Text)
			}
		}
	}

	waitFor(t, func() bool {
		return len(scorer.Submitted()) == 1
	}, "decoded text submission")
}

func TestServer_ScanWS_Denied(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dialWS(t, ts, "/ws/scan")

	var denied bool
	for !denied {
		var ev scanner.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read event: %v", err)
		}
		switch {
		case ev.State == scanner.StateRequestingPermission && ev.Type == scanner.EventState:
			if err := conn.WriteJSON(map[string]string{"type": "denied", "error": "NotAllowedError"}); err != nil {
				t.Fatalf("write denied: %v", err)
			}
		case ev.Type == scanner.EventError && ev.State == scanner.StatePermissionError:
			denied = true
			if ev.Error != "NotAllowedError" {
				t.Errorf("error = %q", ev.Error)
			}
		}
	}
}

func TestServer_ResultsWS_StreamsViews(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	doJSON(t, s, "POST", "/api/analyze", `{"text":"http://paypa1.com"}`)

	conn := dialWS(t, ts, "/ws/results")

	// The latest view is replayed on connect.
	var view map[string]any
	if err := conn.ReadJSON(&view); err != nil {
		t.Fatalf("read view: %v", err)
	}
	if view["label"] != "High Risk" {
		t.Errorf("replayed label = %v", view["label"])
	}

	// Receiving the replay proves the subscription is live, so subsequent
	// renders stream in order: pending first, then the verdict.
	doJSON(t, s, "POST", "/api/analyze", `{"text":"http://paypa1.com/again"}`)

	for {
		// Decoding into a non-nil map merges keys, so reset it to keep
		// stale fields from a prior view out of the next one.
		view = map[string]any{}
		if err := conn.ReadJSON(&view); err != nil {
			t.Fatalf("read view: %v", err)
		}
		if view["pending"] != true {
			break
		}
	}
	if view["label"] != "High Risk" {
		t.Errorf("label = %v", view["label"])
	}
}
