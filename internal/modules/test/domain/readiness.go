package domain

import (
	"sync"
	"time"
)

// Readiness records when the bot's session became ready.
type Readiness struct {
	mu      sync.RWMutex
	userID  string
	readyAt time.Time
}

// MarkReady records that the session is ready as userID.
func (r *Readiness) MarkReady(userID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userID = userID
	r.readyAt = at
}

// IsReady reports whether a ready event was seen.
func (r *Readiness) IsReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.readyAt.IsZero()
}

// UserID returns the user the session identified as.
func (r *Readiness) UserID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.userID
}
