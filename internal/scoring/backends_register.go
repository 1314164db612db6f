package scoring

import "github.com/phishguard/phishguard/internal/logging"

// RegisterDefaultBackends registers the nethttp and demo backends. Call this
// early in main() to make backends available to NewScorer.
func RegisterDefaultBackends() {
	RegisterBackend(BackendNetHTTP, func(cfg Config, logger logging.Logger) (Scorer, error) {
		return NewNetHTTPScorer(cfg, logger, nil)
	})

	RegisterBackend(BackendDemo, func(cfg Config, logger logging.Logger) (Scorer, error) {
		return NewLocalScorer(cfg, logger), nil
	})
}
