package dialog

import (
	"context"
	"fmt"
	"sync"
)

// Future is a single-assignment result. It is resolved or rejected exactly
// once; later attempts are ignored.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done. Cancelling ctx only
// stops this wait; the dialog itself keeps its place in the queue.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled value without blocking. ok is false while the
// future is still pending.
func (f *Future[T]) Result() (value T, err error, ok bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

func (f *Future[T]) resolve(value T) bool {
	return f.settle(value, nil)
}

func (f *Future[T]) reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(value T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Poster schedules fn on the UI goroutine. loop.Loop implements it.
type Poster interface {
	Post(fn func())
}

// Then runs fn on the poster's goroutine once f settles, so result handlers
// never run inside the drain loop or re-enter navigation mid-operation.
func Then[T any](poster Poster, f *Future[T], fn func(T, error)) {
	go func() {
		<-f.done
		poster.Post(func() {
			fn(f.value, f.err)
		})
	}()
}

// Map derives a future whose value is fn applied to f's value. Rejections
// pass through unchanged.
func Map[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	out := newFuture[U]()
	go func() {
		<-f.done
		if f.err != nil {
			out.reject(f.err)
			return
		}
		out.resolve(fn(f.value))
	}()
	return out
}

// OnLoop wraps p so each presentation runs on the poster's goroutine while
// the drain worker waits for it. The poster must keep running until the
// queue is idle. If the poster also has a Stopped() <-chan struct{} method,
// as loop.Loop does, presentations still waiting when it closes fail with
// ErrPosterStopped.
func OnLoop[S, R any](poster Poster, p Presenter[S, R]) Presenter[S, R] {
	type outcome struct {
		result R
		err    error
	}

	var stopped <-chan struct{}
	if s, ok := poster.(interface{ Stopped() <-chan struct{} }); ok {
		stopped = s.Stopped()
	}

	return PresenterFunc[S, R](func(spec S) (R, error) {
		done := make(chan outcome, 1)
		poster.Post(func() {
			var o outcome
			defer func() {
				if r := recover(); r != nil {
					o.err = fmt.Errorf("presenter panicked: %v", r)
				}
				done <- o
			}()
			o.result, o.err = p.Present(spec)
		})

		select {
		case o := <-done:
			return o.result, o.err
		case <-stopped:
			select {
			case o := <-done:
				return o.result, o.err
			default:
				var zero R
				return zero, ErrPosterStopped
			}
		}
	})
}
