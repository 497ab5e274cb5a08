// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     version
// Description: Central version management for application and components
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

// Version constants for mRE
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Engine     = "1.0.0"
	History    = "1.0.0"
	Background = "1.0.0"
	TUI        = "1.0.0"
	GUI        = "1.0.0"
)

// HistorySchema is the version of the SQLite history schema. It is
// stored in the database via PRAGMA user_version.
const HistorySchema = 1

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "history":
		return History
	case "background":
		return Background
	case "tui":
		return TUI
	case "gui":
		return GUI
	default:
		return Application
	}
}

// Components lists the component names known to ComponentVersion.
func Components() []string {
	return []string{"engine", "history", "background", "tui", "gui"}
}
