// Package constants defines shared constants and environment configuration
// used throughout pageshell.
package constants

import (
	"os"
	"time"

	"github.com/holoplot/go-evdev"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by pageshell.ApplyEnv.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	LogLevelEnvVar    = "LOG_LEVEL"
	LogPathEnvVar     = "LOG_PATH"
	LocaleEnvVar      = "LOCALE"
	BackDeviceEnvVar  = "BACK_DEVICE"
	CatalogEnvVar     = "PAGESHELL_CATALOG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// DefaultBackDevicePath is the input device carrying the face buttons on most
// supported handhelds.
const DefaultBackDevicePath = "/dev/input/event1"

// DefaultBackKeyCodes are the evdev key codes treated as a back request.
var DefaultBackKeyCodes = []evdev.EvCode{
	evdev.KEY_BACK,
	evdev.KEY_ESC,
}

// DefaultLocale is used when no locale is configured or the configured one
// fails to parse.
const DefaultLocale = "en"

// Default timing constants.
const (
	DefaultInputDelay = 20 * time.Millisecond // Debounce delay between back presses
	DefaultLoopBuffer = 64                    // Pending UI callbacks before Post blocks
)
