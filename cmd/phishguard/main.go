// Command phishguard starts the PhishGuard analysis API server.
// Usage: go run ./cmd/phishguard [-addr :8080] [-config config.yaml] [-static ./static]
package main

import (
	"flag"
	"log"

	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/scoring"
	"github.com/phishguard/phishguard/internal/server"
)

func main() {
	var (
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		configPath = flag.String("config", "config.yaml", "path to the YAML config file")
		staticDir  = flag.String("static", "", "web UI directory (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *staticDir != "" {
		cfg.Server.StaticDir = *staticDir
	}

	scoring.RegisterDefaultBackends()

	logger := logging.NewStdoutLogger("PhishGuard")

	s, err := server.NewServer(server.Config{
		ListenAddr: cfg.Server.Addr,
		StaticDir:  cfg.Server.StaticDir,
		AppConfig:  cfg.AppConfig(),
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Creating server: %v", err)
	}
	defer s.Close()

	logger.Info("server listening",
		logging.Field{Key: "addr", Value: cfg.Server.Addr},
		logging.Field{Key: "scorer_backend", Value: cfg.Scorer.Backend})

	if err := s.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
