package server

// AnalyzeRequest carries the raw user text to score.
type AnalyzeRequest struct {
	Text string `json:"text" example:"Check out http://paypa1-login.com/verify now"`
}

// SetModeRequest selects the active classification mode.
type SetModeRequest struct {
	Mode string `json:"mode" example:"high_recall"`
}

// PolicyResponse reports the current decision thresholds.
type PolicyResponse struct {
	Mode                string  `json:"mode" example:"standard"`
	StandardThreshold   float64 `json:"standard_threshold" example:"0.5"`
	HighRecallThreshold float64 `json:"high_recall_threshold" example:"0.1"`
}

// ScanStartResponse identifies a newly created scan session.
type ScanStartResponse struct {
	SessionID string `json:"session_id" example:"7f6c7e2e-0b0e-4cf7-9a1b-1f2f3a4b5c6d"`
	State     string `json:"state" example:"requesting_permission"`
}

// ScanStatusResponse reports the active session, if any.
type ScanStatusResponse struct {
	SessionID string `json:"session_id,omitempty" example:"7f6c7e2e-0b0e-4cf7-9a1b-1f2f3a4b5c6d"`
	State     string `json:"state" example:"scanning"`
}

// ScanDecodeRequest feeds a decoded payload into the active scan session.
type ScanDecodeRequest struct {
	Text string `json:"text" example:"http://paypa1-login.com/verify"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
