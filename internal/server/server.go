package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/phishguard/phishguard/docs/swagger" // generated API docs
	"github.com/phishguard/phishguard/internal/app"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/policy"
	"github.com/phishguard/phishguard/internal/render"
	"github.com/phishguard/phishguard/internal/scanner"
	"github.com/phishguard/phishguard/internal/scoring"
)

// Server is the HTTP + WebSocket API surface for PhishGuard.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	snapshot     *render.Snapshot
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger

	// The remote capture device for the active scan session, so REST and
	// WebSocket clients can feed it.
	scanMu  sync.Mutex
	scanDev *scanner.ChannelDevice
}

// NewServer creates a new Server with its own Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	scorer := cfg.Scorer
	if scorer == nil {
		scoring.RegisterDefaultBackends()
		var err error
		scorer, err = scoring.NewScorer(cfg.AppConfig.Scorer, logger)
		if err != nil {
			return nil, err
		}
	}

	snapshot := render.NewSnapshot()
	orch := app.NewOrchestrator(cfg.AppConfig, scorer, snapshot, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		snapshot:     snapshot,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/analyze", s.optionsHandler("POST"))
	r.Options("/api/result", s.optionsHandler("GET"))
	r.Options("/api/policy", s.optionsHandler("GET"))
	r.Options("/api/policy/mode", s.optionsHandler("PUT"))
	r.Options("/api/scan", s.optionsHandler("GET"))
	r.Options("/api/scan/start", s.optionsHandler("POST"))
	r.Options("/api/scan/stop", s.optionsHandler("POST"))
	r.Options("/api/scan/decode", s.optionsHandler("POST"))

	// Analysis
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/result", s.handleGetResult)

	// Policy
	r.Get("/api/policy", s.handleGetPolicy)
	r.Put("/api/policy/mode", s.handleSetMode)

	// Scan sessions over REST
	r.Post("/api/scan/start", s.handleScanStart)
	r.Post("/api/scan/stop", s.handleScanStop)
	r.Post("/api/scan/decode", s.handleScanDecode)
	r.Get("/api/scan", s.handleScanStatus)

	r.Get("/api/health", s.handleHealth)

	// WebSockets
	r.Get("/ws/scan", s.handleScanWS)
	r.Get("/ws/results", s.handleResultsWS)

	// API docs
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Web UI
	if s.cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and underlying resources.
func (s *Server) Close() {
	if s.orchestrator != nil {
		_ = s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// Analysis

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	view, err := s.orchestrator.Submit(r.Context(), body.Text)
	if err != nil {
		if errors.Is(err, app.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Warn("analyzing submission", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("analyzed submission", logging.Field{Key: "label", Value: view.Label})
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	view := s.snapshot.Latest()
	if view == nil {
		writeError(w, http.StatusNotFound, "no analysis yet")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Policy

func (s *Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PolicyResponse{
		Mode:                string(s.orchestrator.Mode()),
		StandardThreshold:   policy.StandardThreshold,
		HighRecallThreshold: s.orchestrator.HighRecallThreshold(),
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var body SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	mode, ok := policy.ParseMode(body.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown mode: "+body.Mode)
		return
	}

	view := s.orchestrator.SetMode(mode)
	s.logger.Info("set mode", logging.Field{Key: "mode", Value: string(mode)})
	writeJSON(w, http.StatusOK, map[string]any{
		"mode": string(mode),
		"view": view,
	})
}

// Scan sessions (REST)

func (s *Server) handleScanStart(w http.ResponseWriter, r *http.Request) {
	dev := scanner.NewChannelDevice()
	handle, err := s.orchestrator.StartScan(context.Background(), dev)
	if err != nil {
		if errors.Is(err, app.ErrScanActive) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Warn("starting scan", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.setScanDevice(dev)
	// REST clients have no separate permission prompt.
	dev.Grant()

	go s.drainScan(dev, handle)

	s.logger.Info("started scan session", logging.Field{Key: "session_id", Value: handle.ID})
	writeJSON(w, http.StatusAccepted, ScanStartResponse{
		SessionID: handle.ID,
		State:     string(scanner.StateRequestingPermission),
	})
}

func (s *Server) handleScanStop(w http.ResponseWriter, r *http.Request) {
	s.orchestrator.StopScan(r.Context())
	s.logger.Info("stopped scan session")
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleScanDecode(w http.ResponseWriter, r *http.Request) {
	var body ScanDecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.scanMu.Lock()
	dev := s.scanDev
	s.scanMu.Unlock()
	if dev == nil {
		writeError(w, http.StatusConflict, "no active scan session")
		return
	}

	dev.ReportDecode(body.Text)
	writeJSON(w, http.StatusAccepted, nil)
}

func (s *Server) handleScanStatus(w http.ResponseWriter, r *http.Request) {
	id, state := s.orchestrator.ScanState()
	writeJSON(w, http.StatusOK, ScanStatusResponse{
		SessionID: id,
		State:     string(state),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WebSockets

// wsClientMessage is one message from the scan client. Type discriminates:
// granted, denied, decode, frame_error, stop.
type wsClientMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	dev := scanner.NewChannelDevice()
	handle, err := s.orchestrator.StartScan(context.Background(), dev)
	if err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		s.logger.Warn("starting scan", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	s.setScanDevice(dev)

	// Read loop: the client drives permission and decode outcomes.
	go func() {
		for {
			var msg wsClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				// Client went away; release the camera claim.
				s.orchestrator.StopScan(context.Background())
				return
			}
			switch msg.Type {
			case "granted":
				dev.Grant()
			case "denied":
				dev.Deny(errors.New(msg.Error))
			case "decode":
				dev.ReportDecode(msg.Text)
			case "frame_error":
				dev.ReportFrameError(errors.New(msg.Error))
			case "stop":
				s.orchestrator.StopScan(context.Background())
			}
		}
	}()

	for ev := range handle.Events {
		if err := conn.WriteJSON(ev); err != nil {
			s.orchestrator.StopScan(context.Background())
			break
		}
	}
	s.clearScanDevice(dev)
}

func (s *Server) handleResultsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	views, cancel := s.snapshot.Subscribe()
	defer cancel()

	// Read pump solely to notice disconnects; cancel closes the view stream.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	if latest := s.snapshot.Latest(); latest != nil {
		if err := conn.WriteJSON(latest); err != nil {
			return
		}
	}

	for v := range views {
		if err := conn.WriteJSON(v); err != nil {
			return
		}
	}
}

func (s *Server) setScanDevice(dev *scanner.ChannelDevice) {
	s.scanMu.Lock()
	s.scanDev = dev
	s.scanMu.Unlock()
}

func (s *Server) clearScanDevice(dev *scanner.ChannelDevice) {
	s.scanMu.Lock()
	if s.scanDev == dev {
		s.scanDev = nil
	}
	s.scanMu.Unlock()
}

// drainScan keeps the REST session's event stream flowing and releases the
// device registration when the session finalizes.
func (s *Server) drainScan(dev *scanner.ChannelDevice, handle *app.ScanHandle) {
	for range handle.Events {
	}
	s.clearScanDevice(dev)
}
