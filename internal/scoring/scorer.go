// Package scoring provides clients for the phishing scoring service. The
// Scorer contract hides whether analysis happens over HTTP against a remote
// model server or in-process against the demo engine; backends are selected
// by name through the registry in factory.go.
package scoring

import (
	"context"
	"fmt"

	"github.com/phishguard/phishguard/internal/model"
)

// Scorer submits raw user text for analysis and returns the scored result.
type Scorer interface {
	// Score sends the text to the scoring backend. A nil error means the
	// backend produced a result, which may still be the input-validation
	// sentinel. Transport failures, timeouts, and non-2xx responses are
	// returned as errors.
	Score(ctx context.Context, text string) (*model.AnalysisResult, error)

	// Close releases any resources held by the backend.
	Close() error
}

// StatusError reports a non-2xx response from the scoring service. Body holds
// a bounded prefix of the response payload for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scoring service returned status %d: %s", e.StatusCode, e.Body)
}
