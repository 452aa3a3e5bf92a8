package bot

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gammazero/workerpool"
)

// Dispatcher runs interaction and event handling one task at a time, in submission order.
type Dispatcher struct {
	mu      sync.Mutex
	pool    *workerpool.WorkerPool
	stopped bool
}

// NewDispatcher creates a Dispatcher backed by a single worker.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{pool: workerpool.New(1)}
}

// Enqueue schedules task. It reports false when the dispatcher has been stopped.
func (d *Dispatcher) Enqueue(task func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		slog.Warn("dropped task on stopped dispatcher")
		return false
	}
	d.pool.Submit(task)
	return true
}

// Stop waits for queued tasks to finish and rejects new ones.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	d.pool.StopWait()
}

// safeCall runs fn, converting a panic into ErrHandlerPanic.
func safeCall(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()
	return fn()
}
