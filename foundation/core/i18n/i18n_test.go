// File: i18n_test.go
// Title: Internationalization Module Tests
// Description: Tests for catalog loading, lookup with fallback, templates,
//              locale switching and environment detection.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation
// - 2026-10-17 v0.2.0: Tests against fstest.MapFS

package i18n

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/en.toml": {Data: []byte(`
[error]
division_by_zero = "Cannot divide by zero"
generic = "Error"

[status]
saved = "Saved {{.Count}} entries"
only_en = "English only"
`)},
		"locales/de.toml": {Data: []byte(`
[error]
division_by_zero = "Division durch Null nicht möglich"
generic = "Fehler"

[status]
saved = "{{.Count}} Einträge gespeichert"
`)},
		"locales/zh.yaml": {Data: []byte(`
error:
  division_by_zero: "除数不能为零"
`)},
		"locales/README.md": {Data: []byte("ignored")},
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(Options{DefaultLocale: "en", FS: testFS(), Dir: "locales"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNew(t *testing.T) {
	m := newTestManager(t)

	if m.GetDefaultLocale() != "en" {
		t.Errorf("GetDefaultLocale() = %v, want en", m.GetDefaultLocale())
	}
	got := m.GetAvailableLocales()
	want := []string{"de", "en", "zh"}
	if len(got) != len(want) {
		t.Fatalf("GetAvailableLocales() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetAvailableLocales()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty default locale", Options{FS: testFS(), Dir: "locales"}},
		{"missing file system", Options{DefaultLocale: "en"}},
		{"missing directory", Options{DefaultLocale: "en", FS: testFS(), Dir: "nope"}},
		{"missing default catalog", Options{DefaultLocale: "fr", FS: testFS(), Dir: "locales"}},
		{"broken catalog", Options{DefaultLocale: "en", FS: fstest.MapFS{
			"en.toml": {Data: []byte("[broken")},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestTranslation(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		locale string
		key    string
		want   string
	}{
		{"en", "error.division_by_zero", "Cannot divide by zero"},
		{"de", "error.division_by_zero", "Division durch Null nicht möglich"},
		{"zh", "error.division_by_zero", "除数不能为零"},
		{"zh", "error.generic", "Error"},
		{"de", "status.only_en", "English only"},
		{"de", "status.unknown", "[status.unknown]"},
		{"en", "status", "[status]"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.key, func(t *testing.T) {
			if err := m.SetLocale(tt.locale); err != nil {
				t.Fatalf("SetLocale() error = %v", err)
			}
			if got := m.T(tt.key); got != tt.want {
				t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	m := newTestManager(t)
	data := map[string]interface{}{"Count": 3}

	if got := m.T("status.saved", data); got != "Saved 3 entries" {
		t.Errorf("T() = %q, want %q", got, "Saved 3 entries")
	}
	m.SetLocale("de")
	if got := m.T("status.saved", data); got != "3 Einträge gespeichert" {
		t.Errorf("T() = %q, want %q", got, "3 Einträge gespeichert")
	}
}

func TestTryT_NotFound(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.TryT("missing.key"); err == nil {
		t.Error("TryT() expected error for missing key")
	}
	if !m.HasTranslation("error.generic") {
		t.Error("HasTranslation(error.generic) = false")
	}
	if m.HasTranslation("missing.key") {
		t.Error("HasTranslation(missing.key) = true")
	}
}

func TestSetLocale(t *testing.T) {
	m := newTestManager(t)

	var changed []string
	m.OnLocaleChange(func(locale string) {
		changed = append(changed, locale)
	})

	if err := m.SetLocale("de_AT"); err != nil {
		t.Fatalf("SetLocale(de_AT) error = %v", err)
	}
	if m.GetCurrentLocale() != "de" {
		t.Errorf("GetCurrentLocale() = %v, want de", m.GetCurrentLocale())
	}
	if err := m.SetLocale("fr"); err == nil {
		t.Error("SetLocale(fr) expected error")
	}
	if len(changed) != 1 || changed[0] != "de" {
		t.Errorf("handler calls = %v, want [de]", changed)
	}
}

func TestDetectLocale(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name  string
		lcAll string
		lang  string
		want  string
	}{
		{"lang with encoding", "", "de_DE.UTF-8", "de"},
		{"lc_all wins", "zh_CN.UTF-8", "de_DE.UTF-8", "zh"},
		{"posix", "C", "", "en"},
		{"unavailable", "", "fr_FR.UTF-8", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", tt.lang)
			if got := m.DetectLocale(); got != tt.want {
				t.Errorf("DetectLocale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := map[string]string{
		"en":    "en",
		"EN_us": "en-US",
		"de-de": "de-DE",
		"zh":    "zh",
		"x":     "",
		"":      "",
	}
	for in, want := range tests {
		if got := NormalizeLocale(in); got != want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitLocale(t *testing.T) {
	lang, country := SplitLocale("de_AT")
	if lang != "de" || country != "AT" {
		t.Errorf("SplitLocale(de_AT) = %q, %q, want de, AT", lang, country)
	}
}

func TestGetTranslationKeys(t *testing.T) {
	m := newTestManager(t)
	keys := m.GetTranslationKeys("de")
	want := []string{"error.division_by_zero", "error.generic", "status.saved"}
	if len(keys) != len(want) {
		t.Fatalf("GetTranslationKeys(de) = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}
