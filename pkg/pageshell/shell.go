// Package pageshell ties the navigation coordinator, the dialog queue and
// the platform back button to one UI loop.
//
// A typical application builds a Shell once, registers its pages, and runs
// the loop on the main goroutine:
//
//	shell, err := pageshell.New(options, host, presenter)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer shell.Close()
//
//	shell.Loop.Post(func() {
//		shell.Navigator.Navigate("main", nil)
//	})
//	shell.Run(ctx)
package pageshell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/catalog"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/constants"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/dialog"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/input"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/locale"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/loop"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/navigation"
)

// Shell is the window-level composition root.
type Shell struct {
	Loop      *loop.Loop
	Navigator *navigation.Coordinator
	Dialogs   *dialog.Queue[dialog.Prompt, dialog.Choice]
	Prompts   *dialog.Prompter
	Back      *input.BackButton
	Keys      *input.SDLSource // Feed SDL events here from the render loop
	Locale    *locale.Localizer

	evdev  *input.EvdevSource
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New builds a Shell. Prompts are presented on the loop goroutine, so Run
// must be active while dialogs are pending.
func New(options Options, host navigation.Host, presenter dialog.Presenter[dialog.Prompt, dialog.Choice]) (*Shell, error) {
	if host == nil {
		return nil, errors.New("pageshell: nil navigation host")
	}
	if presenter == nil {
		return nil, errors.New("pageshell: nil dialog presenter")
	}

	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	}

	labels, err := locale.New(options.Locale)
	if err != nil {
		return nil, fmt.Errorf("pageshell: locale: %w", err)
	}

	s := &Shell{
		Loop:   loop.New(options.LoopBuffer),
		Back:   input.NewBackButton(options.BackInputDelay),
		Locale: labels,
		logger: internal.GetInternalLogger(),
	}
	s.Keys = input.NewSDLSource(s.Back)
	s.Dialogs = dialog.NewQueue(dialog.OnLoop(s.Loop, presenter))
	s.Prompts = dialog.NewPrompter(s.Dialogs, labels)
	s.Navigator = navigation.New(host, s.Back,
		navigation.WithDefaultSection(navigation.Section(options.DefaultSection)))

	if options.CatalogPath != "" {
		c, err := catalog.Load(options.CatalogPath)
		if err != nil {
			return nil, err
		}
		if err := c.Apply(s.Navigator); err != nil {
			return nil, err
		}
	}

	if err := s.Navigator.Initialize(); err != nil {
		return nil, err
	}

	if options.InitialDestination != "" {
		if err := s.Navigator.Navigate(navigation.ViewModelID(options.InitialDestination), nil); err != nil {
			return nil, fmt.Errorf("pageshell: initial destination: %w", err)
		}
	}

	if options.BackDevicePath != "" && !constants.IsDevMode() {
		s.evdev = input.NewEvdevSource(options.BackDevicePath, options.backKeyCodes()...)
	}

	return s, nil
}

// Run drives the UI loop on the calling goroutine until ctx is done or Close
// is called. The hardware back key, if configured, is read alongside it.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.evdev != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			err := s.evdev.Run(ctx, s.Loop, s.Back)
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("Back key input stopped",
					"device", s.evdev.Path,
					"error", err)
			}
		}()
	}

	err := s.Loop.Run(ctx)
	cancel()
	s.wg.Wait()
	return err
}

// GoBack is the shell's back command. It reports whether a page was popped.
// Must be called on the loop goroutine.
func (s *Shell) GoBack() bool {
	ok, err := s.Navigator.GoBack()
	if err != nil {
		s.logger.Error("Back navigation failed", "error", err)
	}
	return ok
}

// Close stops the loop and releases the log file. Dialogs still pending are
// rejected with dialog.ErrPosterStopped.
func (s *Shell) Close() {
	s.Loop.Stop()
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before New or GetLogger to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
