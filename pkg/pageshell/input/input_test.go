package input

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/navigation"
)

type fakeDevice struct {
	events chan *evdev.InputEvent
	closed chan struct{}
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		events: make(chan *evdev.InputEvent, 16),
		closed: make(chan struct{}),
	}
}

func (d *fakeDevice) ReadOne() (*evdev.InputEvent, error) {
	select {
	case ev, ok := <-d.events:
		if !ok {
			return nil, io.EOF
		}
		return ev, nil
	case <-d.closed:
		return nil, errors.New("device closed")
	}
}

func (d *fakeDevice) Close() error {
	select {
	case <-d.closed:
	default:
		close(d.closed)
	}
	return nil
}

// syncPoster runs posted functions immediately and counts them.
type syncPoster struct {
	posted chan struct{}
}

func (p *syncPoster) Post(fn func()) {
	fn()
	p.posted <- struct{}{}
}

func TestBackButtonSingleHandler(t *testing.T) {
	b := NewBackButton(0)
	if b.Press() {
		t.Fatal("Press() handled with no handler")
	}

	var first, second int
	b.Subscribe(func(req *navigation.BackRequest) {
		first++
		req.Handled = true
	})
	b.Subscribe(func(*navigation.BackRequest) { second++ })

	if !b.Press() {
		t.Fatal("Press() not handled")
	}
	if first != 1 || second != 0 {
		t.Fatalf("first = %d second = %d, want 1 and 0", first, second)
	}

	b.Unsubscribe(nil)
	b.Unsubscribe(nil)
	if b.Subscribed() || b.Press() {
		t.Fatal("handler still installed after Unsubscribe")
	}
}

func TestBackButtonDebounce(t *testing.T) {
	b := NewBackButton(100 * time.Millisecond)
	clock := time.Unix(0, 0)
	b.now = func() time.Time { return clock }

	presses := 0
	b.Subscribe(func(req *navigation.BackRequest) {
		presses++
		req.Handled = true
	})

	b.Press()
	clock = clock.Add(50 * time.Millisecond)
	b.Press()
	clock = clock.Add(100 * time.Millisecond)
	b.Press()

	if presses != 2 {
		t.Fatalf("presses = %d, want 2", presses)
	}
}

func TestBackButtonWithCoordinator(t *testing.T) {
	b := NewBackButton(0)
	host := &countingHost{}
	nav := navigation.New(host, b)
	nav.Register("a", "A")
	nav.Register("b", "B")
	nav.Initialize()

	nav.Navigate("a", nil)
	if b.Subscribed() {
		t.Fatal("subscribed with empty history")
	}
	nav.Navigate("b", nil)
	if !b.Subscribed() {
		t.Fatal("not subscribed with history")
	}

	if !b.Press() {
		t.Fatal("Press() not handled")
	}
	if b.Subscribed() || nav.CanGoBack() {
		t.Fatal("still subscribed after returning to root")
	}
	if host.pops != 1 {
		t.Fatalf("host pops = %d, want 1", host.pops)
	}
}

type countingHost struct {
	depth, pops int
	shown       bool
}

func (h *countingHost) Push(navigation.ViewID, any, navigation.Effect) {
	if h.shown {
		h.depth++
	}
	h.shown = true
}

func (h *countingHost) Pop(navigation.Effect) {
	h.depth--
	h.pops++
}

func (h *countingHost) CanGoBackward() bool { return h.depth > 0 }

func TestEvdevSourceRun(t *testing.T) {
	dev := newFakeDevice()
	src := NewEvdevSource("/dev/input/event1")
	src.open = func(path string) (eventReader, error) {
		if path != "/dev/input/event1" {
			t.Errorf("open(%q)", path)
		}
		return dev, nil
	}

	b := NewBackButton(0)
	presses := 0
	b.Subscribe(func(req *navigation.BackRequest) { presses++ })

	poster := &syncPoster{posted: make(chan struct{}, 16)}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- src.Run(ctx, poster, b) }()

	dev.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1}
	dev.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 1}
	dev.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 2}
	dev.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 0}
	dev.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_ESC, Value: 1}

	for i := 0; i < 2; i++ {
		select {
		case <-poster.posted:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d presses posted", i)
		}
	}

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if presses != 2 {
		t.Fatalf("presses = %d, want 2", presses)
	}
}

func TestEvdevSourceOpenError(t *testing.T) {
	src := NewEvdevSource("/dev/input/missing")
	src.open = func(string) (eventReader, error) { return nil, errors.New("no such device") }

	err := src.Run(context.Background(), &syncPoster{}, NewBackButton(0))
	if err == nil {
		t.Fatal("Run() error = nil, want open failure")
	}
}

func TestSDLSource(t *testing.T) {
	src := NewSDLSource(NewBackButton(0))

	tests := []struct {
		name  string
		event sdl.Event
		want  bool
	}{
		{"escape down", &sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, true},
		{"escape repeat", &sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, false},
		{"escape up", &sdl.KeyboardEvent{State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, false},
		{"other key", &sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_RETURN}}, false},
		{"controller b", &sdl.ControllerButtonEvent{State: sdl.PRESSED, Button: uint8(sdl.CONTROLLER_BUTTON_B)}, true},
		{"controller a", &sdl.ControllerButtonEvent{State: sdl.PRESSED, Button: uint8(sdl.CONTROLLER_BUTTON_A)}, false},
		{"quit", &sdl.QuitEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := src.IsBackEvent(tt.event); got != tt.want {
				t.Errorf("IsBackEvent() = %v, want %v", got, tt.want)
			}
		})
	}

	src.Button.Subscribe(func(req *navigation.BackRequest) { req.Handled = true })
	consumed, handled := src.Handle(tests[0].event)
	if !consumed || !handled {
		t.Fatalf("Handle() = %v, %v, want true, true", consumed, handled)
	}
}
