package scoring

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/phishguard/phishguard/internal/logging"
)

// BackendConstructor constructs a Scorer given the config and logger.
type BackendConstructor func(cfg Config, logger logging.Logger) (Scorer, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Calling RegisterBackend with the same name overwrites the
// previous constructor.
func RegisterBackend(name Backend, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(string(name))] = ctor
}

// NewScorer constructs the configured scoring backend. It returns an error if
// the named backend has not been registered.
func NewScorer(cfg Config, logger logging.Logger) (Scorer, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendNetHTTP)
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("scoring backend %q not registered: available backends=%v", backend, ListBackends())
	}

	sc, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct scoring backend %q: %w", backend, err)
	}
	if sc == nil {
		return nil, errors.New("scoring constructor returned nil")
	}
	return sc, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}
