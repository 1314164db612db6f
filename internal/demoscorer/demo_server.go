package demoscorer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/phishguard/phishguard/internal/logging"
)

// DemoServer exposes the Engine over the scoring service's HTTP contract:
// POST /api/score and GET /api/health.
type DemoServer struct {
	cfg    Config
	engine *Engine
	logger logging.Logger
}

// NewDemoServer creates a new demo scoring server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	return &DemoServer{
		cfg:    cfg,
		engine: NewEngine(cfg, logger),
		logger: logger,
	}
}

// Handler returns the HTTP handler, exported separately so tests can mount
// it on httptest servers.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/score", s.scoreHandler)
	mux.HandleFunc("/api/health", s.healthHandler)
	return mux
}

// Start starts the demo scoring server.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo scoring server starting on http://localhost%s\n", addr)
	fmt.Printf("Score endpoint at http://localhost%s/api/score\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *DemoServer) scoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := s.engine.Score(r.Context(), body.Text)
	if err != nil {
		s.logger.Warn("scoring failed", logging.Field{Key: "error", Value: err.Error()})
		http.Error(w, "error during analysis: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *DemoServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "model_loaded": true})
}
