package render

import "sync"

// Renderer is the rendering collaborator contract: it receives complete
// views and must not block the caller.
type Renderer interface {
	Render(v *View)
}

// Snapshot is the default Renderer. It keeps the most recent view for pull
// consumers and fans new views out to subscribers (e.g. WebSocket streams).
type Snapshot struct {
	mu     sync.Mutex
	latest *View
	subs   map[int]chan *View
	nextID int
}

// NewSnapshot returns an empty snapshot renderer.
func NewSnapshot() *Snapshot {
	return &Snapshot{subs: make(map[int]chan *View)}
}

// Render stores v as the latest view and notifies subscribers. Slow
// subscribers drop updates rather than stall rendering.
func (s *Snapshot) Render(v *View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = v
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Latest returns the most recently rendered view, or nil before the first
// render.
func (s *Snapshot) Latest() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Subscribe registers a view stream. The returned cancel func must be called
// to release the subscription; the channel is closed on cancel.
func (s *Snapshot) Subscribe() (<-chan *View, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan *View, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
