// Package dialog serializes modal dialogs so at most one is on screen at a
// time, delivering each caller a Future of its own result.
//
// Presentations have no timeout. A Presenter that never returns holds every
// request queued behind it.
package dialog

import (
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
)

// Presenter shows one dialog and blocks until it is dismissed.
type Presenter[S, R any] interface {
	Present(spec S) (R, error)
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc[S, R any] func(spec S) (R, error)

func (f PresenterFunc[S, R]) Present(spec S) (R, error) {
	return f(spec)
}

// request is a queued dialog. It is created on Enqueue, settled once when
// its turn comes, and never reused.
type request[S, R any] struct {
	seq    uint64
	spec   S
	future *Future[R]
}

// Queue presents dialogs one at a time in enqueue order.
//
// A single worker goroutine drains the queue. It is started by the first
// Enqueue that finds the queue idle and exits once the queue is empty.
// A request that never completes blocks every request behind it; there is
// no timeout.
type Queue[S, R any] struct {
	presenter Presenter[S, R]
	logger    *slog.Logger

	mu       sync.Mutex
	pending  []*request[S, R]
	draining atomic.Bool
	seq      uint64
	idle     chan struct{}
}

// QueueOption configures a Queue.
type QueueOption func(*queueOptions)

type queueOptions struct {
	logger *slog.Logger
}

// WithQueueLogger replaces the internal logger.
func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(o *queueOptions) {
		o.logger = logger
	}
}

// NewQueue creates an idle queue that presents through p.
func NewQueue[S, R any](p Presenter[S, R], opts ...QueueOption) *Queue[S, R] {
	o := queueOptions{logger: internal.GetInternalLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	idle := make(chan struct{})
	close(idle)

	return &Queue[S, R]{
		presenter: p,
		logger:    o.logger,
		idle:      idle,
	}
}

// Enqueue adds spec behind every request already queued and returns its
// future immediately.
func (q *Queue[S, R]) Enqueue(spec S) *Future[R] {
	q.mu.Lock()
	q.seq++
	req := &request[S, R]{seq: q.seq, spec: spec, future: newFuture[R]()}
	q.pending = append(q.pending, req)
	start := q.draining.CompareAndSwap(false, true)
	if start {
		q.idle = make(chan struct{})
	}
	q.mu.Unlock()

	q.logger.Debug("Dialog enqueued", "seq", req.seq, "start_drain", start)

	if start {
		go q.drain()
	}
	return req.future
}

// Pending returns the number of requests waiting behind the active one.
func (q *Queue[S, R]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Draining reports whether a dialog is being presented or is about to be.
func (q *Queue[S, R]) Draining() bool {
	return q.draining.Load()
}

// Idle returns a channel closed once the queue has fully drained. The channel
// is replaced each time draining restarts.
func (q *Queue[S, R]) Idle() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.idle
}

func (q *Queue[S, R]) drain() {
	for {
		req, ok := q.next()
		if !ok {
			return
		}
		q.present(req)
	}
}

// next pops the head request. When the queue is empty it clears the
// draining flag under the lock, so a concurrent Enqueue either lands before
// the check or starts a fresh worker.
func (q *Queue[S, R]) next() (*request[S, R], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		q.draining.Store(false)
		close(q.idle)
		return nil, false
	}

	req := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return req, true
}

func (q *Queue[S, R]) present(req *request[S, R]) {
	q.logger.Debug("Presenting dialog", "seq", req.seq)

	result, err := q.safePresent(req.spec)
	if err != nil {
		q.logger.Error("Dialog presentation failed", "seq", req.seq, "error", err)
		req.future.reject(&PresentationError{Seq: req.seq, Err: err})
		return
	}

	req.future.resolve(result)
}

// safePresent recovers a panicking presenter so one broken dialog can't
// take the worker down with it.
func (q *Queue[S, R]) safePresent(spec S) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("presenter panicked: %v", r)
		}
	}()
	return q.presenter.Present(spec)
}
