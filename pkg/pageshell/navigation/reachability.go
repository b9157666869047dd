package navigation

import (
	"slices"
	"sync"

	"go.uber.org/atomic"
)

// Reachability is an observable boolean. Watchers are notified only when the
// value actually changes, so a back button bound to it never sees redundant
// updates.
type Reachability struct {
	value atomic.Bool

	mu       sync.Mutex
	watchers map[uint64]func(bool)
	nextID   uint64
}

// Get returns the current value.
func (r *Reachability) Get() bool {
	return r.value.Load()
}

// Watch registers fn for change notifications and returns a function that
// removes it.
func (r *Reachability) Watch(fn func(bool)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.watchers == nil {
		r.watchers = make(map[uint64]func(bool))
	}
	id := r.nextID
	r.nextID++
	r.watchers[id] = fn

	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

// set stores v and reports whether it changed. Watchers run on the calling
// goroutine in registration order.
func (r *Reachability) set(v bool) bool {
	if r.value.Swap(v) == v {
		return false
	}

	r.mu.Lock()
	ids := make([]uint64, 0, len(r.watchers))
	for id := range r.watchers {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		r.mu.Lock()
		fn, ok := r.watchers[id]
		r.mu.Unlock()
		if ok {
			fn(v)
		}
	}
	return true
}
