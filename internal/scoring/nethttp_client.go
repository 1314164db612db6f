package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/model"
)

// maxErrorBody bounds how much of a failed response is carried in the error.
const maxErrorBody = 2048

// net/http backed scoring client for a remote model server.
type NetHTTPScorer struct {
	client  *http.Client
	baseURL string
	logger  logging.Logger
}

// NewNetHTTPScorer creates a scoring client for the service at cfg.BaseURL.
// Pass a non-nil httpClient to control transport behavior in tests.
func NewNetHTTPScorer(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPScorer, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("scoring base URL is required")
	}

	componentLogger := logger.With(logging.Field{Key: "backend", Value: "nethttp"})

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultConfig().Timeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	componentLogger.Info("created nethttp scorer",
		logging.Field{Key: "base_url", Value: baseURL},
		logging.Field{Key: "timeout", Value: httpClient.Timeout.String()})

	return &NetHTTPScorer{
		client:  httpClient,
		baseURL: baseURL,
		logger:  componentLogger,
	}, nil
}

// Score posts the text to /api/score and decodes the analysis payload.
func (ns *NetHTTPScorer) Score(ctx context.Context, text string) (*model.AnalysisResult, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	ns.logger.Debug("sending score request",
		logging.Field{Key: "url", Value: ns.baseURL + "/api/score"},
		logging.Field{Key: "text_len", Value: len(text)})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ns.baseURL+"/api/score", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := ns.client.Do(httpReq)
	if err != nil {
		ns.logger.Warn("score request failed",
			logging.Field{Key: "url", Value: ns.baseURL + "/api/score"},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		ns.logger.Warn("score request rejected",
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result model.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	ns.logger.Debug("score request completed",
		logging.Field{Key: "probability", Value: result.Probability},
		logging.Field{Key: "elapsed", Value: time.Since(start).String()})

	return &result, nil
}

func (ns *NetHTTPScorer) Close() error {
	ns.logger.Info("closing nethttp scorer")
	return nil
}

// HTTPClient returns the underlying *http.Client.
func (ns *NetHTTPScorer) HTTPClient() *http.Client {
	return ns.client
}
