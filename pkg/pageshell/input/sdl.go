package input

import (
	"slices"

	"github.com/veandco/go-sdl2/sdl"
)

// DefaultBackKeys are the keyboard keys treated as back.
var DefaultBackKeys = []sdl.Keycode{sdl.K_ESCAPE, sdl.K_AC_BACK}

// DefaultBackControllerButtons are the controller buttons treated as back.
var DefaultBackControllerButtons = []uint8{uint8(sdl.CONTROLLER_BUTTON_B)}

// SDLSource recognizes back presses in an SDL event stream. Feed it from the
// same loop that polls SDL events; it must run on the UI goroutine.
type SDLSource struct {
	Button            *BackButton
	Keys              []sdl.Keycode
	ControllerButtons []uint8
}

// NewSDLSource creates a source using the default keys and buttons.
func NewSDLSource(button *BackButton) *SDLSource {
	return &SDLSource{
		Button:            button,
		Keys:              DefaultBackKeys,
		ControllerButtons: DefaultBackControllerButtons,
	}
}

// IsBackEvent reports whether event is the initial press of a back key or
// button. Key repeats and releases don't count.
func (s *SDLSource) IsBackEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		return e.State == sdl.PRESSED && e.Repeat == 0 && slices.Contains(s.Keys, e.Keysym.Sym)
	case *sdl.ControllerButtonEvent:
		return e.State == sdl.PRESSED && slices.Contains(s.ControllerButtons, e.Button)
	}
	return false
}

// Handle presses the back button for back events. consumed is true when the
// event was a back event, handled mirrors the BackRequest.
func (s *SDLSource) Handle(event sdl.Event) (consumed, handled bool) {
	if !s.IsBackEvent(event) {
		return false, false
	}
	return true, s.Button.Press()
}
