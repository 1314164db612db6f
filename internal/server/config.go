package server

import (
	"github.com/phishguard/phishguard/internal/app"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/scoring"
)

// Config carries the API server settings.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// StaticDir optionally serves a web UI from disk at the root path.
	StaticDir string

	// AppConfig configures the orchestrator. Nil means defaults.
	AppConfig *app.Config

	// Logger is the server logger. Nil means a stdout logger.
	Logger logging.Logger

	// Scorer overrides the backend constructed from AppConfig. Used by tests
	// to inject doubles.
	Scorer scoring.Scorer
}
