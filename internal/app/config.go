package app

import (
	"github.com/phishguard/phishguard/internal/scanner"
	"github.com/phishguard/phishguard/internal/scoring"
)

// Config carries the orchestrator settings.
type Config struct {
	// Scorer configures the scoring backend used for submissions.
	Scorer scoring.Config

	// Scan configures camera scan sessions.
	Scan scanner.Config
}

// DefaultConfig targets a scoring service on localhost with the default
// camera settings.
func DefaultConfig() *Config {
	return &Config{
		Scorer: scoring.DefaultConfig(),
		Scan:   scanner.DefaultConfig(),
	}
}
