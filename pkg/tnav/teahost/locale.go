package teahost

import (
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
)

// NewBundle creates a message bundle with English as the fallback language
// and TOML message files enabled.
func NewBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// NewLocalizer loads TOML message files (e.g. "active.fr.toml") and returns a
// localizer preferring lang.
func NewLocalizer(lang string, files ...string) (*i18n.Localizer, error) {
	bundle := NewBundle()
	for _, f := range files {
		if _, err := bundle.LoadMessageFile(f); err != nil {
			return nil, tnav.NewInfrastructureError("load_messages", err)
		}
	}
	return i18n.NewLocalizer(bundle, lang, language.English.String()), nil
}
