// Package app coordinates the analysis flow: it owns the threshold policy and
// the cached last result, routes submissions through the scoring backend, and
// supervises at most one camera scan session at a time.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/model"
	"github.com/phishguard/phishguard/internal/policy"
	"github.com/phishguard/phishguard/internal/render"
	"github.com/phishguard/phishguard/internal/scanner"
	"github.com/phishguard/phishguard/internal/scoring"
)

// ErrEmptyInput is returned by Submit for blank text.
var ErrEmptyInput = errors.New("input text is empty")

// ErrScanActive is returned by StartScan while a session is already running.
var ErrScanActive = errors.New("a scan session is already active")

// ScanHandle identifies a running scan session and carries its event stream.
// The channel closes when the session finalizes.
type ScanHandle struct {
	ID     string
	Events <-chan scanner.Event
}

// Orchestrator serializes all policy mutation and result caching behind one
// mutex, so every rendered view reflects a single consistent policy state.
type Orchestrator struct {
	cfg      *Config
	scorer   scoring.Scorer
	renderer render.Renderer
	logger   logging.Logger

	mu         sync.Mutex
	policy     *policy.ThresholdPolicy
	lastResult *model.AnalysisResult
	session    *scanner.Session
}

// NewOrchestrator ties together config, scorer, renderer and logger.
func NewOrchestrator(cfg *Config, scorer scoring.Scorer, renderer render.Renderer, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		cfg:      cfg,
		scorer:   scorer,
		renderer: renderer,
		logger:   logger.With(logging.Field{Key: "component", Value: "Orchestrator"}),
		policy:   policy.New(),
	}
}

// Submit runs the full analysis flow for one piece of user text: any active
// scan is cancelled, a pending view is rendered, the text is scored, and the
// terminal view is rendered and returned. Scoring failures are absorbed into
// an error view rather than surfaced as a Submit error, so the presentation
// never dead-ends; the only error cases are blank input and a dead context.
func (o *Orchestrator) Submit(ctx context.Context, text string) (*render.View, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	// A manual submission supersedes camera input.
	o.stopActiveSession(ctx)

	o.mu.Lock()
	pending := render.Pending(o.policy)
	o.renderer.Render(pending)
	o.mu.Unlock()

	res, err := o.scorer.Score(ctx, trimmed)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		o.logger.Warn("scoring failed", logging.Field{Key: "error", Value: err.Error()})
		view := render.Failure(err.Error(), o.policy)
		o.renderer.Render(view)
		return view, nil
	}

	// Threshold retention: adopt the advertised boundary when valid, keep
	// the prior one otherwise.
	if res.HighRecallThreshold != nil {
		if !o.policy.SetHighRecallThreshold(*res.HighRecallThreshold) {
			o.logger.Warn("scoring service advertised out-of-range threshold",
				logging.Field{Key: "threshold", Value: *res.HighRecallThreshold})
		}
	}

	o.lastResult = res
	view := render.FromResult(res, o.policy)
	o.renderer.Render(view)

	o.logger.Info("submission analyzed",
		logging.Field{Key: "probability", Value: res.Probability},
		logging.Field{Key: "tier", Value: string(view.Tier)})
	return view, nil
}

// SetMode switches the active threshold and immediately re-renders the cached
// result under the new policy. The returned view is nil when nothing has been
// analyzed yet.
func (o *Orchestrator) SetMode(m policy.Mode) *render.View {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.policy.SetMode(m)
	o.logger.Info("mode changed", logging.Field{Key: "mode", Value: string(m)})

	if o.lastResult == nil {
		return nil
	}
	view := render.FromResult(o.lastResult, o.policy)
	o.renderer.Render(view)
	return view
}

// Mode returns the active classification mode.
func (o *Orchestrator) Mode() policy.Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.policy.Mode()
}

// HighRecallThreshold returns the last-known high-recall boundary.
func (o *Orchestrator) HighRecallThreshold() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.policy.HighRecall()
}

// StartScan begins a camera scan session on the given device. Only one
// session may run at a time. The session is driven asynchronously: state
// transitions and the decode arrive on the handle's event stream, and a
// successful decode is submitted for analysis automatically.
func (o *Orchestrator) StartScan(ctx context.Context, dev scanner.CaptureDevice) (*ScanHandle, error) {
	o.mu.Lock()
	if o.session != nil {
		o.mu.Unlock()
		return nil, ErrScanActive
	}
	session := scanner.NewSession(o.cfg.Scan, dev, o.logger)
	o.session = session
	o.mu.Unlock()

	out := make(chan scanner.Event, 16)
	go o.consumeSession(session, out)

	// Start blocks until the camera is granted or denied, so it runs off the
	// caller's goroutine; failures surface as permission_error events.
	go func() {
		if err := session.Start(ctx); err != nil {
			o.logger.Warn("scan session failed to start",
				logging.Field{Key: "session_id", Value: session.ID()},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}()

	o.logger.Info("scan session created", logging.Field{Key: "session_id", Value: session.ID()})
	return &ScanHandle{ID: session.ID(), Events: out}, nil
}

// consumeSession forwards session events to the handle and triggers analysis
// on decode. It is the single consumer of the session's event channel.
func (o *Orchestrator) consumeSession(session *scanner.Session, out chan scanner.Event) {
	defer close(out)
	for ev := range session.Events() {
		// Non-blocking forward; slow handle consumers drop events.
		select {
		case out <- ev:
		default:
		}

		if ev.Type == scanner.EventDecoded {
			if _, err := o.Submit(context.Background(), ev.Text); err != nil {
				o.logger.Warn("decoded text rejected",
					logging.Field{Key: "session_id", Value: session.ID()},
					logging.Field{Key: "error", Value: err.Error()})
			}
		}
	}

	o.mu.Lock()
	if o.session == session {
		o.session = nil
	}
	o.mu.Unlock()
}

// StopScan cancels the active scan session, if any.
func (o *Orchestrator) StopScan(ctx context.Context) {
	o.stopActiveSession(ctx)
}

// ScanState reports the active session's state, or Idle when none is running.
func (o *Orchestrator) ScanState() (string, scanner.State) {
	o.mu.Lock()
	session := o.session
	o.mu.Unlock()
	if session == nil {
		return "", scanner.StateIdle
	}
	return session.ID(), session.State()
}

// Close stops any running session and releases the scoring backend.
func (o *Orchestrator) Close() error {
	o.stopActiveSession(context.Background())
	return o.scorer.Close()
}

func (o *Orchestrator) stopActiveSession(ctx context.Context) {
	o.mu.Lock()
	session := o.session
	o.mu.Unlock()
	if session != nil {
		session.Stop(ctx)
	}
}
