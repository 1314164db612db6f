// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding collaborator contracts from the
// production code, allowing injection into components under test without real
// I/O or side effects.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/render"
	"github.com/phishguard/phishguard/internal/scanner"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Scorer ────────────────────────────────────────────────────────────

// DummyScorer implements scoring.Scorer. By default it returns Result for
// every submission; set Err to force a failure instead. Submitted texts are
// recorded for assertions.
type DummyScorer struct {
	Result        *model.AnalysisResult
	Err           error
	ResponseDelay time.Duration

	mu    sync.Mutex
	Texts []string
}

func (d *DummyScorer) Score(ctx context.Context, text string) (*model.AnalysisResult, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Texts = append(d.Texts, text)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.Result != nil {
		res := *d.Result
		return &res, nil
	}
	return &model.AnalysisResult{}, nil
}

func (d *DummyScorer) Close() error { return nil }

// Submitted returns a copy of the recorded submission texts.
func (d *DummyScorer) Submitted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.Texts...)
}

// ─── CaptureDevice ─────────────────────────────────────────────────────

// DummyCaptureDevice implements scanner.CaptureDevice. Set StartErr/StopErr
// to force acquisition or release failures; EmitDecode and EmitFrameError
// drive the registered callbacks like camera frames would.
type DummyCaptureDevice struct {
	StartErr error
	StopErr  error

	mu           sync.Mutex
	scanning     bool
	StartCalls   int
	StopCalls    int
	onDecode     func(string)
	onFrameError func(error)
}

func (d *DummyCaptureDevice) Start(_ context.Context, _ scanner.CameraPreference, _ scanner.ScanConfig, onDecode func(string), onFrameError func(error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.StartCalls++
	if d.StartErr != nil {
		return d.StartErr
	}
	d.scanning = true
	d.onDecode = onDecode
	d.onFrameError = onFrameError
	return nil
}

func (d *DummyCaptureDevice) Stop(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.StopCalls++
	d.scanning = false
	return d.StopErr
}

func (d *DummyCaptureDevice) IsScanning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scanning
}

// EmitDecode simulates a successful frame decode.
func (d *DummyCaptureDevice) EmitDecode(text string) {
	d.mu.Lock()
	cb := d.onDecode
	d.mu.Unlock()
	if cb != nil {
		cb(text)
	}
}

// EmitFrameError simulates a per-frame decode miss.
func (d *DummyCaptureDevice) EmitFrameError(err error) {
	d.mu.Lock()
	cb := d.onFrameError
	d.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

// ─── Renderer ──────────────────────────────────────────────────────────

// DummyRenderer implements render.Renderer with in-memory recording.
type DummyRenderer struct {
	mu    sync.Mutex
	Views []*render.View
}

func (r *DummyRenderer) Render(v *render.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Views = append(r.Views, v)
}

// Rendered returns a copy of all views rendered so far.
func (r *DummyRenderer) Rendered() []*render.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*render.View(nil), r.Views...)
}

// Last returns the most recent view, or nil.
func (r *DummyRenderer) Last() *render.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Views) == 0 {
		return nil
	}
	return r.Views[len(r.Views)-1]
}
