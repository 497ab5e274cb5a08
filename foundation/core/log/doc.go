// Package log provides structured logging for the mRE calculator.
//
// Package: log
// Title: mRE Structured Logging
// Description: Leveled logger with persistent context fields and JSON, text
//              and console formatters. Front ends log to a file because the
//              terminal belongs to the UI; CLI commands log to stderr.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-17 v0.2.0: Removed async mode and request context
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelDebug,
//		Format: log.FormatText,
//		Output: file,
//		Name:   "tui",
//	})
//	logger.Info("history entry stored", log.Fields{"expression": "3 + 4"})
package log
