package scoring

import "time"

// Backend names a registered scorer implementation.
type Backend string

const (
	BackendNetHTTP Backend = "nethttp"
	BackendDemo    Backend = "demo"
)

// Config carries the scoring client settings.
type Config struct {
	// Backend selects the registered scorer implementation.
	Backend Backend

	// BaseURL is the scoring service root, e.g. http://localhost:8000.
	// Only the nethttp backend uses it.
	BaseURL string

	// Timeout bounds a single scoring round trip.
	Timeout time.Duration

	// HighRecallThreshold seeds the demo backend's advertised threshold.
	// Zero means the demo default.
	HighRecallThreshold float64
}

// DefaultConfig returns the settings for a scoring service on localhost.
func DefaultConfig() Config {
	return Config{
		Backend: BackendNetHTTP,
		BaseURL: "http://localhost:8000",
		Timeout: 12 * time.Second,
	}
}
