// Package loop provides the single logical UI goroutine. Navigation and
// dialog callbacks are posted here so they never run concurrently or
// re-enter each other.
package loop

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/constants"
)

// ErrStopped is returned by Run after Stop.
var ErrStopped = errors.New("loop: stopped")

// Loop runs posted functions one at a time, in post order, on the goroutine
// that called Run.
type Loop struct {
	queue   chan func()
	stop    chan struct{}
	stopped atomic.Bool
	running atomic.Bool

	mu     sync.Mutex
	exited chan struct{} // Closed when the latest Run returns; nil before the first Run
}

// New creates a loop whose Post blocks once buffer functions are pending.
// A buffer <= 0 uses constants.DefaultLoopBuffer.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = constants.DefaultLoopBuffer
	}
	return &Loop{
		queue: make(chan func(), buffer),
		stop:  make(chan struct{}),
	}
}

// Post schedules fn. It is safe to call from any goroutine. Post blocks
// while the buffer is full and Run is active, so functions running on the
// loop must not post in bulk. Before the first Run, posts wait for it. Once
// Run has returned, posts are buffered while there is room and dropped
// after that. Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	if l.stopped.Load() {
		return
	}
	select {
	case l.queue <- fn:
		return
	default:
	}

	l.mu.Lock()
	exited := l.exited
	l.mu.Unlock()

	select {
	case l.queue <- fn:
	case <-l.stop:
	case <-exited:
	}
}

// Run executes posted functions until ctx is done or Stop is called.
// Functions still queued when Run returns stay queued for the next Run.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop: already running")
	}
	defer l.running.Store(false)

	exited := make(chan struct{})
	l.mu.Lock()
	l.exited = exited
	l.mu.Unlock()
	defer close(exited)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return ErrStopped
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stop)
	}
}

// Stopped is closed once Stop has been called.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stop
}

// Running reports whether Run is executing.
func (l *Loop) Running() bool {
	return l.running.Load()
}
