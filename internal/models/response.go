package models

import "time"

// APIResponse uniform envelope returned by every endpoint
type APIResponse[T any] struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	Data       T         `json:"data,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"statusCode"`
}

// Empty payload for responses that carry only a message
type Empty struct{}
