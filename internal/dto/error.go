package dto

import "time"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	TraceID string         `json:"traceId"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ValidationIssue describes one rejected input field.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	UptimeSeconds float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
}
