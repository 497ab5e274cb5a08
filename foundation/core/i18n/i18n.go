// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the i18n Manager: loading catalogs from an fs.FS,
//              nested key lookup with locale fallback and template rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-17 v0.2.0: fs.FS based loading, environment locale detection

package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale string // Default locale (e.g., "en")
	FS            fs.FS  // File system holding the catalogs
	Dir           string // Directory inside FS, "." if empty
}

// Manager manages translations for an application
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	translations  map[string]map[string]interface{} // locale -> translations
	templates     map[string]*template.Template     // locale:key -> compiled template
	handlers      []LocaleChangeHandler
}

// LocaleChangeHandler is called after the current locale changed
type LocaleChangeHandler func(locale string)

// New creates a manager and loads every catalog found in the directory
func New(options Options) (*Manager, error) {
	if strings.TrimSpace(options.DefaultLocale) == "" {
		return nil, mreerror.New("default locale cannot be empty").
			WithCode(mreerror.CodeInvalidInput).
			WithOperation("i18n.New")
	}
	if options.FS == nil {
		return nil, mreerror.New("no catalog file system given").
			WithCode(mreerror.CodeInvalidInput).
			WithOperation("i18n.New")
	}
	if options.Dir == "" {
		options.Dir = "."
	}

	m := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		translations:  make(map[string]map[string]interface{}),
		templates:     make(map[string]*template.Template),
	}

	if err := m.loadAll(options.FS, options.Dir); err != nil {
		return nil, mreerror.Wrap(err, "failed to load locales").
			WithCode(mreerror.CodeConfigError).
			WithOperation("i18n.loadAll")
	}
	return m, nil
}

// loadAll loads all catalogs from dir
func (m *Manager) loadAll(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		locale := NormalizeLocale(strings.TrimSuffix(name, path.Ext(name)))
		if locale == "" {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}
		data, err := parse(ext, content)
		if err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", name, err)
		}
		m.translations[locale] = data
	}

	if _, ok := m.translations[m.defaultLocale]; !ok {
		return fmt.Errorf("default locale '%s' not found", m.defaultLocale)
	}
	return nil
}

func parse(ext string, content []byte) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// T translates a key with optional template data. Missing keys render
// as "[key]".
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, err := m.TryT(key, data...)
	if err != nil && translation == "" {
		return "[" + key + "]"
	}
	return translation
}

// TryT translates a key and returns an error if translation fails
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	translation := m.lookup(key, m.currentLocale)
	if translation == "" {
		return "", mreerror.New("translation not found").
			WithCode(mreerror.CodeNotFound).
			WithOperation("i18n.TryT").
			WithDetail("key", key)
	}

	if len(data) > 0 && data[0] != nil {
		rendered, err := m.render(m.currentLocale+":"+key, translation, data[0])
		if err != nil {
			return translation, mreerror.Wrap(err, "template rendering failed").
				WithCode(mreerror.CodeInvalidInput).
				WithOperation("i18n.render")
		}
		return rendered, nil
	}
	return translation, nil
}

// lookup retrieves a translation with fallback to the default locale
func (m *Manager) lookup(key, locale string) string {
	if value := nestedValue(m.translations[locale], key); value != "" {
		return value
	}
	if locale != m.defaultLocale {
		return nestedValue(m.translations[m.defaultLocale], key)
	}
	return ""
}

// nestedValue resolves a dotted key
func nestedValue(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	parts := strings.Split(key, ".")
	current := data
	for i, k := range parts {
		value, ok := current[k]
		if !ok {
			return ""
		}
		if i == len(parts)-1 {
			if _, isTable := value.(map[string]interface{}); isTable {
				return ""
			}
			return fmt.Sprintf("%v", value)
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}

// render executes a translation template, caching the compiled form
func (m *Manager) render(cacheKey, text string, data map[string]interface{}) (string, error) {
	tmpl, ok := m.templates[cacheKey]
	if !ok {
		var err error
		tmpl, err = template.New(cacheKey).Option("missingkey=zero").Parse(text)
		if err != nil {
			return text, fmt.Errorf("template compilation failed: %w", err)
		}
		m.templates[cacheKey] = tmpl
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return text, fmt.Errorf("template execution failed: %w", err)
	}
	return sb.String(), nil
}

// SetLocale changes the current locale. Regional variants fall back to
// their language ("de-AT" selects "de").
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()

	resolved := m.resolve(locale)
	if resolved == "" {
		m.mu.Unlock()
		return mreerror.New("locale not available").
			WithCode(mreerror.CodeNotFound).
			WithOperation("i18n.SetLocale").
			WithDetail("locale", locale)
	}
	m.currentLocale = resolved
	handlers := append([]LocaleChangeHandler(nil), m.handlers...)
	m.mu.Unlock()

	for _, h := range handlers {
		h(resolved)
	}
	return nil
}

// resolve maps a requested locale onto an available one
func (m *Manager) resolve(locale string) string {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return ""
	}
	if _, ok := m.translations[normalized]; ok {
		return normalized
	}
	language, _ := SplitLocale(normalized)
	if _, ok := m.translations[language]; ok {
		return language
	}
	return ""
}

// OnLocaleChange registers a handler called after SetLocale
func (m *Manager) OnLocaleChange(handler LocaleChangeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

// GetCurrentLocale returns the current active locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// GetDefaultLocale returns the default locale
func (m *Manager) GetDefaultLocale() string {
	return m.defaultLocale
}

// GetAvailableLocales returns a sorted list of all available locales
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasTranslation checks if a key exists for the current locale or the default
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(key, m.currentLocale) != ""
}

// GetTranslationKeys returns all keys of a locale, sorted
func (m *Manager) GetTranslationKeys(locale string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := collectKeys(m.translations[locale], "")
	sort.Strings(keys)
	return keys
}

func collectKeys(data map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, collectKeys(nested, full)...)
			continue
		}
		keys = append(keys, full)
	}
	return keys
}

// DetectLocale returns the available locale matching the environment
// (LC_ALL, LC_MESSAGES, LANG), or the default locale.
func (m *Manager) DetectLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		// strip encoding and modifier: de_DE.UTF-8@euro
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		m.mu.RLock()
		resolved := m.resolve(value)
		m.mu.RUnlock()
		if resolved != "" {
			return resolved
		}
	}
	return m.defaultLocale
}

// NormalizeLocale normalizes a locale string to "ll" or "ll-CC"
func NormalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" {
		return ""
	}

	parts := strings.Split(locale, "-")
	language := parts[0]
	if len(language) != 2 && len(language) != 3 {
		return ""
	}
	if len(parts) > 1 && len(parts[1]) == 2 {
		return language + "-" + strings.ToUpper(parts[1])
	}
	return language
}

// SplitLocale splits a locale into language and country parts
func SplitLocale(locale string) (language, country string) {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return "", ""
	}
	parts := strings.SplitN(normalized, "-", 2)
	language = parts[0]
	if len(parts) > 1 {
		country = parts[1]
	}
	return language, country
}
