package navigation

import (
	"log/slog"

	"go.uber.org/atomic"
)

// BackRequest is a platform back gesture. Setting Handled suppresses the
// platform's default behavior (usually closing the app).
type BackRequest struct {
	Handled bool
}

// BackHandler receives back gestures.
type BackHandler func(*BackRequest)

// BackSignal is the platform back gesture. It is a single process-wide
// toggle and may not tolerate duplicate registration, so the Coordinator
// only calls Subscribe and Unsubscribe on actual state changes.
type BackSignal interface {
	Subscribe(handler BackHandler)
	Unsubscribe(handler BackHandler)
}

// gestureSubscription guards a BackSignal with a flag so redundant calls
// never reach the platform.
type gestureSubscription struct {
	signal     BackSignal
	handler    BackHandler
	subscribed atomic.Bool
	logger     *slog.Logger
}

// sync subscribes when want is true and unsubscribes when false. Calls that
// match the current state are no-ops.
func (g *gestureSubscription) sync(want bool) {
	if g.signal == nil {
		return
	}

	if want {
		if g.subscribed.CompareAndSwap(false, true) {
			g.logger.Debug("Subscribing to back gesture")
			g.signal.Subscribe(g.handler)
		}
		return
	}

	if g.subscribed.CompareAndSwap(true, false) {
		g.logger.Debug("Unsubscribing from back gesture")
		g.signal.Unsubscribe(g.handler)
	}
}

func (g *gestureSubscription) active() bool {
	return g.subscribed.Load()
}
