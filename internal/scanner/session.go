// Package scanner governs the lifecycle of one camera-based capture-and-decode
// attempt as an explicit state machine driven by discrete collaborator events.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phishguard/phishguard/internal/logging"
)

// State is one node of the session state machine.
type State string

const (
	StateIdle                 State = "idle"
	StateRequestingPermission State = "requesting_permission"
	StateScanning             State = "scanning"
	StateStopping             State = "stopping"
	StatePermissionError      State = "permission_error"
	StateStopError            State = "stop_error"
)

// EventType discriminates session events.
type EventType string

const (
	EventState   EventType = "state"
	EventDecoded EventType = "decoded"
	EventError   EventType = "error"
)

// Event is one observable transition or decode emitted by a session.
type Event struct {
	SessionID string    `json:"session_id"`
	Type      EventType `json:"type"`
	State     State     `json:"state,omitempty"`
	Text      string    `json:"text,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ErrSessionActive is returned by Start when the session is not Idle.
var ErrSessionActive = errors.New("scan session already started")

// Session owns the camera resource for its lifetime and is the only writer of
// its own state. A session is single-use: each user request to scan allocates
// a fresh one, and a successful decode, an explicit stop, or a terminal error
// finalizes it back to Idle with the events channel closed.
type Session struct {
	id     string
	cfg    Config
	device CaptureDevice
	logger logging.Logger

	mu       sync.Mutex
	state    State
	started  bool
	decoded  bool
	finished bool
	events   chan Event
}

// NewSession creates an Idle session bound to the given capture device.
func NewSession(cfg Config, dev CaptureDevice, logger logging.Logger) *Session {
	return &Session{
		id:     uuid.New().String(),
		cfg:    cfg,
		device: dev,
		logger: logger.With(logging.Field{Key: "component", Value: "ScanSession"}),
		state:  StateIdle,
		events: make(chan Event, 16),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns the session's event stream. The channel is closed when the
// session finalizes.
func (s *Session) Events() <-chan Event { return s.events }

// Start drives Idle -> RequestingPermission -> Scanning. Calling it on a
// session that is not Idle (or was already used) is rejected so a second
// camera handle can never be acquired. A permission denial or camera failure
// surfaces as a PermissionError event and resolves the session to Idle
// without the camera ever having been held.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.state != StateIdle {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.started = true
	s.setStateLocked(StateRequestingPermission)
	s.mu.Unlock()

	err := s.device.Start(ctx, s.cfg.Camera, s.cfg.Scan, s.onDecode, s.onFrameError)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("camera acquisition failed",
			logging.Field{Key: "session_id", Value: s.id},
			logging.Field{Key: "error", Value: err.Error()})
		s.setStateLocked(StatePermissionError)
		s.emitLocked(Event{Type: EventError, State: StatePermissionError, Error: err.Error()})
		s.setStateLocked(StateIdle)
		s.finishLocked()
		return fmt.Errorf("camera start: %w", err)
	}

	if s.finished {
		// Stop raced the permission prompt and already released the device;
		// the grant is void.
		return errors.New("session stopped before scanning began")
	}

	s.setStateLocked(StateScanning)
	s.logger.Info("scanning started", logging.Field{Key: "session_id", Value: s.id})
	return nil
}

// Stop drives any active state through Stopping back to Idle. Resource
// release is guaranteed on every path out of Stopping: even when the
// underlying stop call fails, the handle is dropped, a StopError event is
// emitted and the session still ends Idle. Stopping an Idle session is a
// no-op.
func (s *Session) Stop(ctx context.Context) {
	s.mu.Lock()
	switch s.state {
	case StateIdle:
		// Idempotent stop. A used session is finalized if it wasn't already.
		if s.started {
			s.finishLocked()
		}
		s.mu.Unlock()
		return
	case StateStopping:
		// Teardown already in flight.
		s.mu.Unlock()
		return
	}
	s.setStateLocked(StateStopping)
	s.mu.Unlock()

	err := s.device.Stop(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("camera stop failed, releasing anyway",
			logging.Field{Key: "session_id", Value: s.id},
			logging.Field{Key: "error", Value: err.Error()})
		s.setStateLocked(StateStopError)
		s.emitLocked(Event{Type: EventError, State: StateStopError, Error: err.Error()})
	}
	s.setStateLocked(StateIdle)
	s.finishLocked()
}

// onDecode handles a successful decode from the capture device. A session
// decodes at most once: the first decode emits a decoded event and
// unconditionally begins teardown.
func (s *Session) onDecode(text string) {
	s.mu.Lock()
	if s.state != StateScanning || s.decoded {
		s.mu.Unlock()
		return
	}
	s.decoded = true
	s.emitLocked(Event{Type: EventDecoded, Text: text})
	s.mu.Unlock()

	s.logger.Info("code decoded", logging.Field{Key: "session_id", Value: s.id})
	s.Stop(context.Background())
}

// onFrameError handles per-frame decode failures. They are non-terminal and
// scanning continues.
func (s *Session) onFrameError(err error) {
	s.logger.Debug("frame decode miss",
		logging.Field{Key: "session_id", Value: s.id},
		logging.Field{Key: "error", Value: err.Error()})
}

func (s *Session) setStateLocked(st State) {
	s.state = st
	s.emitLocked(Event{Type: EventState, State: st})
}

// emitLocked sends non-blocking; slow consumers drop events rather than
// stall the state machine.
func (s *Session) emitLocked(ev Event) {
	if s.finished {
		return
	}
	ev.SessionID = s.id
	select {
	case s.events <- ev:
	default:
	}
}

func (s *Session) finishLocked() {
	if s.finished {
		return
	}
	s.finished = true
	close(s.events)
}
