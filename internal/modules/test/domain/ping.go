package domain

import "time"

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message   string
	Timestamp time.Time
}

// NewPingResult creates a new PingResult.
func NewPingResult() *PingResult {
	return &PingResult{
		Message:   "pong",
		Timestamp: time.Now(),
	}
}
