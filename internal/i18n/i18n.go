// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     i18n
// Description: Eingebettete Meldungskataloge (de, en, zh) fuer die Oberflaechen
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package i18n wires the embedded message catalogs into the foundation
// translation manager and maps engine errors to localized text.
package i18n

import (
	"embed"
	"errors"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
	"github.com/msto63/mRechner/foundation/core/i18n"
)

// DefaultLocale is used when neither config nor environment select one.
const DefaultLocale = "de"

//go:embed locales/*.toml
var catalogs embed.FS

// Translator translates catalog keys for one front end.
type Translator struct {
	manager *i18n.Manager
}

// New creates a translator for the given locale. An empty locale is taken
// from the environment; an unknown one falls back to DefaultLocale.
func New(locale string) (*Translator, error) {
	m, err := i18n.New(i18n.Options{
		DefaultLocale: DefaultLocale,
		FS:            catalogs,
		Dir:           "locales",
	})
	if err != nil {
		return nil, err
	}

	if locale == "" {
		locale = m.DetectLocale()
	}
	if err := m.SetLocale(locale); err != nil {
		_ = m.SetLocale(DefaultLocale)
	}
	return &Translator{manager: m}, nil
}

// MustNew is New for the embedded catalogs, which always parse.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Locale returns the active locale.
func (t *Translator) Locale() string {
	return t.manager.GetCurrentLocale()
}

// Locales returns every locale with a catalog.
func (t *Translator) Locales() []string {
	return t.manager.GetAvailableLocales()
}

// SetLocale switches the active locale.
func (t *Translator) SetLocale(locale string) error {
	return t.manager.SetLocale(locale)
}

// T translates key.
func (t *Translator) T(key string) string {
	return t.manager.T(key)
}

// Value translates key with a single {{.Value}} argument.
func (t *Translator) Value(key string, value interface{}) string {
	return t.manager.T(key, map[string]interface{}{"Value": value})
}

// ErrorMessage returns the localized text for err. An explicit message
// key on the error wins over the key derived from its code.
func (t *Translator) ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	key := mreerror.GetCode(err).MessageKey()
	var e *mreerror.Error
	if errors.As(err, &e) && e.MessageKey() != "" {
		key = e.MessageKey()
	}
	if !t.manager.HasTranslation(key) {
		key = mreerror.CodeUnknown.MessageKey()
	}
	return t.manager.T(key)
}
