// Package dto provides data transfer objects for the HTTP API.
package dto

// ErrorResponse is the single JSON error shape every failure renders as.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
