// File: doc.go
// Title: Internationalization (i18n) Package Documentation
// Description: Package i18n loads TOML and YAML message catalogs from a
//              file system and translates dotted keys with template data
//              and locale fallback.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-17 v0.2.0: Catalogs read from fs.FS so they can be embedded,
//                       locale detection from the process environment

/*
Package i18n provides message catalogs for mRE front ends.

Catalogs are files named after their locale (de.toml, en.toml, zh.yaml)
and read from any fs.FS, typically an embed.FS compiled into the binary:

	//go:embed locales/*.toml
	var locales embed.FS

	m, err := i18n.New(i18n.Options{
		DefaultLocale: "en",
		FS:            locales,
		Dir:           "locales",
	})

Keys use dot notation for nested tables:

	[error]
	division_by_zero = "Cannot divide by zero"

	[status]
	history_saved = "Saved {{.Count}} entries"

	m.T("error.division_by_zero")
	m.T("status.history_saved", map[string]interface{}{"Count": 3})

Lookups fall back to the default locale, and a missing key renders as
"[key]" so gaps are visible in the UI instead of producing empty lines.

DetectLocale reads LC_ALL, LC_MESSAGES and LANG the way POSIX programs
do and returns the best available catalog.
*/
package i18n
