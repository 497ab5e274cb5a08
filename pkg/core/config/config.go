package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// EnvConfigPath names the environment variable that selects the config file
const EnvConfigPath = "MRE_CONFIG"

// History backends
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// DefaultMaxEntries is the history capacity used when none is configured
const DefaultMaxEntries = 100

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	History    HistoryConfig    `toml:"history"`
	Background BackgroundConfig `toml:"background"`
	Display    DisplayConfig    `toml:"display"`
	Keymap     KeymapConfig     `toml:"keymap"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Language  string `toml:"language"`
}

// HistoryConfig holds calculation history settings
type HistoryConfig struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// BackgroundConfig holds background image settings
type BackgroundConfig struct {
	Path     string   `toml:"path"`
	Alpha    int      `toml:"alpha"`
	Watch    bool     `toml:"watch"`
	Debounce Duration `toml:"debounce"`
}

// DisplayConfig holds colours and layout of the front ends
type DisplayConfig struct {
	Accent      string `toml:"accent"`
	Foreground  string `toml:"foreground"`
	Muted       string `toml:"muted"`
	Error       string `toml:"error"`
	ShowHistory bool   `toml:"show_history"`
}

// KeymapConfig points to optional key binding overrides
type KeymapConfig struct {
	Path string `toml:"path"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.Background.Alpha = 100
	cfg.Display.ShowHistory = true
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Booleans and alpha have non-zero defaults, so only keep them when set
	if !md.IsDefined("background", "alpha") {
		cfg.Background.Alpha = 100
	}
	if !md.IsDefined("display", "show_history") {
		cfg.Display.ShowHistory = true
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the MRE_CONFIG environment variable.
// Without an explicit path the default locations are tried; if none exists
// the built-in defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./configs/config.toml",
		"./config.toml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(dir, "mrechner", "config.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinRECHNER"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = defaultDataDir()
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.General.Language == "" {
		c.General.Language = "de"
	}

	// History
	if c.History.Backend == "" {
		c.History.Backend = BackendSQLite
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = DefaultMaxEntries
	}

	// Background
	if c.Background.Debounce.Duration == 0 {
		c.Background.Debounce.Duration = 200 * time.Millisecond
	}

	// Display
	if c.Display.Accent == "" {
		c.Display.Accent = "#F59E0B"
	}
	if c.Display.Foreground == "" {
		c.Display.Foreground = "#F9FAFB"
	}
	if c.Display.Muted == "" {
		c.Display.Muted = "#6B7280"
	}
	if c.Display.Error == "" {
		c.Display.Error = "#EF4444"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = expandPath(c.General.DataDir)
	c.History.Path = expandPath(c.History.Path)
	c.Background.Path = expandPath(c.Background.Path)
	c.Keymap.Path = expandPath(c.Keymap.Path)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	switch c.History.Backend {
	case BackendSQLite, BackendJSON, BackendMemory:
	default:
		return configError("history.backend", c.History.Backend,
			"must be one of sqlite, json, memory")
	}
	if c.History.MaxEntries < 1 {
		return configError("history.max_entries", c.History.MaxEntries, "must be positive")
	}
	if c.Background.Alpha < 0 || c.Background.Alpha > 100 {
		return configError("background.alpha", c.Background.Alpha, "must be between 0 and 100")
	}
	return nil
}

// HistoryPath returns the history file, derived from the data directory
// unless configured explicitly
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	switch c.History.Backend {
	case BackendJSON:
		return filepath.Join(c.General.DataDir, "history.json")
	case BackendMemory:
		return ""
	default:
		return filepath.Join(c.General.DataDir, "history.db")
	}
}

// LogPath returns the log file used while a front end owns the terminal
func (c *Config) LogPath() string {
	return filepath.Join(c.General.DataDir, "mrechner.log")
}

func configError(key string, value interface{}, reason string) error {
	return mreerror.Newf("invalid config value for %s: %s", key, reason).
		WithCode(mreerror.CodeConfigError).
		WithOperation("config.validate").
		WithDetail("key", key).
		WithDetail("value", value)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mrechner")
	}
	return "./data"
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
