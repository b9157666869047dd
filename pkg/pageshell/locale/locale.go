// Package locale resolves the handful of strings the shell itself shows,
// the stock dialog button labels. Application strings are the
// application's business.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/constants"
	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
)

//go:embed messages/*.toml
var embeddedMessages embed.FS

// Localizer looks up message IDs for one language, falling back to English
// and finally to the ID itself.
type Localizer struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

// New builds a Localizer for the given BCP 47 tag. An unparseable tag falls
// back to constants.DefaultLocale rather than failing, since a bad LOCALE
// should never keep the shell from starting.
func New(tag string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := loadFS(bundle, embeddedMessages, "messages"); err != nil {
		return nil, err
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		internal.GetInternalLogger().Warn("Invalid locale; using default",
			"locale", tag,
			"default", constants.DefaultLocale,
			"error", err)
		parsed = language.MustParse(constants.DefaultLocale)
	}

	return &Localizer{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, parsed.String(), constants.DefaultLocale),
		tag:       parsed,
	}, nil
}

func loadFS(bundle *i18n.Bundle, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("locale: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".toml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("locale: read %s: %w", entry.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return fmt.Errorf("locale: parse %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// AddMessages merges an application message file (e.g. "active.fr.toml")
// into the bundle. The language is taken from the file name.
func (l *Localizer) AddMessages(filename string, data []byte) error {
	if _, err := l.bundle.ParseMessageFileBytes(data, filename); err != nil {
		return fmt.Errorf("locale: parse %s: %w", filename, err)
	}
	return nil
}

// Tag returns the language the localizer was built for.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// String returns the translation for id, or id if there is none.
func (l *Localizer) String(id string) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			internal.GetInternalLogger().Debug("Localization failed", "message_id", id, "error", err)
		}
		if msg == "" {
			return id
		}
	}
	return msg
}
