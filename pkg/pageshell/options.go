package pageshell

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/constants"
)

// Options configures a Shell.
type Options struct {
	LogPath            string        `toml:"log_path"`            // Full path for the log file; empty logs to stdout only
	LogLevel           string        `toml:"log_level"`           // Application log level ("debug", "info", "warn", "error")
	Locale             string        `toml:"locale"`              // BCP 47 tag for dialog button labels
	CatalogPath        string        `toml:"catalog_path"`        // Optional destination catalog, see package catalog
	DefaultSection     string        `toml:"default_section"`     // Section shown when the current page has none
	InitialDestination string        `toml:"initial_destination"` // View model navigated to by New, if set
	BackDevicePath     string        `toml:"back_device_path"`    // evdev node for the hardware back key; empty disables it
	BackKeyCodes       []uint16      `toml:"back_key_codes"`      // evdev key codes treated as back
	BackInputDelay     time.Duration `toml:"back_input_delay"`    // Debounce between back presses, e.g. "20ms"
	LoopBuffer         int           `toml:"loop_buffer"`         // Pending UI callbacks before Post blocks
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	codes := make([]uint16, len(constants.DefaultBackKeyCodes))
	for i, c := range constants.DefaultBackKeyCodes {
		codes[i] = uint16(c)
	}

	return Options{
		LogLevel:       "info",
		Locale:         constants.DefaultLocale,
		BackDevicePath: constants.DefaultBackDevicePath,
		BackKeyCodes:   codes,
		BackInputDelay: constants.DefaultInputDelay,
		LoopBuffer:     constants.DefaultLoopBuffer,
	}
}

// LoadOptions reads a TOML options file over DefaultOptions. Keys missing
// from the file keep their defaults; unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	options := DefaultOptions()

	md, err := toml.DecodeFile(path, &options)
	if err != nil {
		return Options{}, fmt.Errorf("pageshell: load options: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("pageshell: load options: unknown key %q", undecoded[0].String())
	}
	return options, nil
}

// ApplyEnv overrides options from the environment. Unset variables leave
// the current value alone.
func ApplyEnv(options *Options) {
	override := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	override(&options.LogLevel, constants.LogLevelEnvVar)
	override(&options.LogPath, constants.LogPathEnvVar)
	override(&options.Locale, constants.LocaleEnvVar)
	override(&options.BackDevicePath, constants.BackDeviceEnvVar)
	override(&options.CatalogPath, constants.CatalogEnvVar)
}

func (o Options) backKeyCodes() []evdev.EvCode {
	codes := make([]evdev.EvCode, len(o.BackKeyCodes))
	for i, c := range o.BackKeyCodes {
		codes[i] = evdev.EvCode(c)
	}
	return codes
}
