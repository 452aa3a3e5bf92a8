package application

import (
	"time"

	"github.com/sglre6355/accord/internal/modules/test/domain"
)

// ReadyInteractor records the session becoming ready.
type ReadyInteractor struct {
	readiness *domain.Readiness
	now       func() time.Time
}

// NewReadyInteractor creates a new ReadyInteractor.
func NewReadyInteractor(readiness *domain.Readiness) *ReadyInteractor {
	return &ReadyInteractor{readiness: readiness, now: time.Now}
}

// Execute marks the session ready as userID.
func (r *ReadyInteractor) Execute(userID string) {
	r.readiness.MarkReady(userID, r.now())
}
