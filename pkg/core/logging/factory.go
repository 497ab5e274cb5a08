// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers with file sinks
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	mrelog "github.com/msto63/mRechner/foundation/core/log"
)

var (
	// Open log files, shared by every logger writing to the same path
	fileSinks   = make(map[string]*os.File)
	fileSinksMu sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	ComponentName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: text)
	Format string

	// FilePath, if set, appends log lines to this file
	FilePath string

	// Quiet suppresses stderr output. Front ends that own the terminal
	// set it together with FilePath.
	Quiet bool

	// Additional outputs (besides stderr and the file)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(componentName string) LoggerConfig {
	return LoggerConfig{
		ComponentName: componentName,
		Level:         "info",
		Format:        "text",
	}
}

// NewLogger creates a new Foundation logger. If the log file cannot be
// opened the logger falls back to stderr.
func NewLogger(cfg LoggerConfig) *mrelog.Logger {
	var outputs []io.Writer
	if !cfg.Quiet {
		outputs = append(outputs, os.Stderr)
	}

	if cfg.FilePath != "" {
		if f, err := openFileSink(cfg.FilePath); err == nil {
			outputs = append(outputs, f)
		} else if cfg.Quiet {
			outputs = append(outputs, os.Stderr)
		}
	}
	outputs = append(outputs, cfg.AdditionalOutputs...)

	var output io.Writer
	switch len(outputs) {
	case 0:
		output = io.Discard
	case 1:
		output = outputs[0]
	default:
		output = io.MultiWriter(outputs...)
	}

	return mrelog.NewWithConfig(mrelog.Config{
		Level:  parseLevel(cfg.Level),
		Format: parseFormat(cfg.Format),
		Output: output,
		Name:   cfg.ComponentName,
	})
}

// NewFileLogger creates a logger that writes only to the given file
func NewFileLogger(componentName, level, path string) *mrelog.Logger {
	cfg := DefaultLoggerConfig(componentName)
	cfg.Level = level
	cfg.FilePath = path
	cfg.Quiet = true
	return NewLogger(cfg)
}

// NewSimpleLogger creates a simple stderr logger
func NewSimpleLogger(componentName string) *mrelog.Logger {
	return NewLogger(DefaultLoggerConfig(componentName))
}

// openFileSink returns the shared handle for path, opening it on first use
func openFileSink(path string) (*os.File, error) {
	fileSinksMu.Lock()
	defer fileSinksMu.Unlock()

	if f, ok := fileSinks[path]; ok {
		return f, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	fileSinks[path] = f
	return f, nil
}

// CloseFileSinks closes all log files opened by NewLogger
func CloseFileSinks() error {
	fileSinksMu.Lock()
	defer fileSinksMu.Unlock()

	var firstErr error
	for path, f := range fileSinks {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(fileSinks, path)
	}
	return firstErr
}

// parseLevel converts a string level to mrelog.Level
func parseLevel(level string) mrelog.Level {
	l, err := mrelog.ParseLevel(level)
	if err != nil {
		return mrelog.LevelInfo
	}
	return l
}

// parseFormat converts a string format to mrelog.Format
func parseFormat(format string) mrelog.Format {
	f, err := mrelog.ParseFormat(format)
	if err != nil {
		return mrelog.FormatText
	}
	return f
}

// Compatibility layer for code using key-value pairs

// Logger wraps the Foundation logger for key-value logging
type Logger struct {
	*mrelog.Logger
	name string
}

// New creates a new simple logger
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger
func Wrap(l *mrelog.Logger) *Logger {
	return &Logger{Logger: l, name: l.Name()}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	mreLevel := mrelog.LevelInfo
	switch level {
	case LevelDebug:
		mreLevel = mrelog.LevelDebug
	case LevelInfo:
		mreLevel = mrelog.LevelInfo
	case LevelWarn:
		mreLevel = mrelog.LevelWarn
	case LevelError:
		mreLevel = mrelog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(mreLevel),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mrelog.Fields
func toFields(keysAndValues ...interface{}) mrelog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mrelog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
