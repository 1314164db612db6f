package demoscorer

// Config carries the demo scoring service settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// HighRecallThreshold is the boundary advertised in every response.
	HighRecallThreshold float64
}

// DefaultConfig returns demo-friendly settings: the port the real scoring
// service would run on and the demo threshold used during evaluation.
func DefaultConfig() Config {
	return Config{
		Port:                8000,
		HighRecallThreshold: 0.20,
	}
}
