// Command demoscorer starts the stand-in scoring service for local demos.
// Usage: go run ./cmd/demoscorer [port]
// Default port: 8000
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/phishguard/phishguard/internal/demoscorer"
	"github.com/phishguard/phishguard/internal/logging"
)

func main() {
	cfg := demoscorer.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   PhishGuard Demo Scoring Service")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("This service mimics the wire contract of the real")
	fmt.Println("scoring model so the PhishGuard server can be demoed")
	fmt.Println("without ML infrastructure.")
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Println("  POST /api/score   {\"text\": \"...\"}")
	fmt.Println("  GET  /api/health")
	fmt.Println()

	server := demoscorer.NewDemoServer(cfg, logging.NewStdoutLogger("DemoScorer"))
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
