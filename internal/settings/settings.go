// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     settings
// Description: Persistence of user settings changed at runtime
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user settings. Values from the config file
// are defaults; these settings win once the user changed them.
type Settings struct {
	BackgroundPath string `json:"background_path"`
	Alpha          int    `json:"alpha"`
	ShowHistory    bool   `json:"show_history"`
	Language       string `json:"language,omitempty"`
}

// Defaults returns the settings of a fresh installation
func Defaults() *Settings {
	return &Settings{
		Alpha:       100,
		ShowHistory: true,
	}
}

// DefaultPath returns the settings file in the user's config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".mrechner", "settings.json")
	}
	return filepath.Join(dir, "mrechner", "settings.json")
}

// Load loads settings from path. A missing or unreadable file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return Defaults(), nil
	}
	s.Alpha = clamp(s.Alpha)
	return s, nil
}

// Save writes settings to path
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Update loads the settings at path, applies fn and saves the result
func Update(path string, fn func(*Settings)) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	fn(s)
	s.Alpha = clamp(s.Alpha)
	if err := Save(path, s); err != nil {
		return nil, err
	}
	return s, nil
}

func clamp(alpha int) int {
	if alpha < 0 {
		return 0
	}
	if alpha > 100 {
		return 100
	}
	return alpha
}
