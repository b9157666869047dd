package input

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/constants"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
)

type eventReader interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

func openDevice(path string) (eventReader, error) {
	return evdev.Open(path)
}

// EvdevSource reads a Linux input device and posts a back press to the UI
// loop for every key-down of one of Codes.
type EvdevSource struct {
	Path  string         // Device node, e.g. /dev/input/event1
	Codes []evdev.EvCode // Key codes treated as back; defaults to constants.DefaultBackKeyCodes

	open   func(path string) (eventReader, error)
	logger *slog.Logger
}

// NewEvdevSource creates a source for the device at path.
func NewEvdevSource(path string, codes ...evdev.EvCode) *EvdevSource {
	if len(codes) == 0 {
		codes = constants.DefaultBackKeyCodes
	}
	return &EvdevSource{
		Path:   path,
		Codes:  codes,
		open:   openDevice,
		logger: internal.GetInternalLogger(),
	}
}

// Run blocks reading events until ctx is done or the device fails. Presses
// are posted to poster, never handled on the reading goroutine.
func (s *EvdevSource) Run(ctx context.Context, poster Poster, button *BackButton) error {
	dev, err := s.open(s.Path)
	if err != nil {
		return fmt.Errorf("input: open %s: %w", s.Path, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		// Closing the device unblocks ReadOne.
		dev.Close()
	}()

	s.logger.Debug("Listening for back key", "device", s.Path, "codes", len(s.Codes))

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input: read %s: %w", s.Path, err)
		}

		if !s.isBackPress(ev) {
			continue
		}

		s.logger.Debug("Back key pressed", "code", ev.Code)
		poster.Post(func() {
			if !button.Press() {
				s.logger.Debug("Back press not handled")
			}
		})
	}
}

// isBackPress matches key-down only; 0 is release and 2 is autorepeat.
func (s *EvdevSource) isBackPress(ev *evdev.InputEvent) bool {
	return ev.Type == evdev.EV_KEY && ev.Value == 1 && slices.Contains(s.Codes, ev.Code)
}
