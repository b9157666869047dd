// Package input turns platform back inputs (a hardware key on an evdev
// device, an SDL key or controller button) into navigation back requests.
package input

import (
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/navigation"
)

// Poster schedules a function on the UI goroutine.
type Poster interface {
	Post(fn func())
}

// BackButton is the process-wide back gesture. It holds at most one handler
// and implements navigation.BackSignal.
type BackButton struct {
	mu         sync.Mutex
	handler    navigation.BackHandler
	inputDelay time.Duration
	lastPress  time.Time
	now        func() time.Time
	logger     *slog.Logger
}

// NewBackButton creates a back button that ignores presses arriving within
// inputDelay of the previous one.
func NewBackButton(inputDelay time.Duration) *BackButton {
	return &BackButton{
		inputDelay: inputDelay,
		now:        time.Now,
		logger:     internal.GetInternalLogger(),
	}
}

// Subscribe installs handler. A second Subscribe while one is installed is
// ignored; the platform signal accepts one registration only.
func (b *BackButton) Subscribe(handler navigation.BackHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handler != nil {
		b.logger.Debug("Back button already subscribed, ignoring")
		return
	}
	b.handler = handler
}

// Unsubscribe removes the installed handler, if any.
func (b *BackButton) Unsubscribe(navigation.BackHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = nil
}

// Subscribed reports whether a handler is installed.
func (b *BackButton) Subscribed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler != nil
}

// Press delivers a back request to the handler and reports whether it was
// handled. An unhandled press should fall through to the platform default.
// Presses inside the debounce window are swallowed and report true.
// Must be called on the UI goroutine.
func (b *BackButton) Press() bool {
	b.mu.Lock()
	now := b.now()
	if !b.lastPress.IsZero() && now.Sub(b.lastPress) < b.inputDelay {
		b.mu.Unlock()
		return true
	}
	b.lastPress = now
	handler := b.handler
	b.mu.Unlock()

	// The handler may unsubscribe itself, so it runs without the lock.
	if handler == nil {
		return false
	}
	req := &navigation.BackRequest{}
	handler(req)
	return req.Handled
}
