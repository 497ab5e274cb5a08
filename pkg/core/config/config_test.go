package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"milliseconds", "200ms", 200 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{200 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "200ms" {
		t.Errorf("MarshalText() = %v, want 200ms", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "meinRECHNER" {
		t.Errorf("General.Name = %v, want meinRECHNER", cfg.General.Name)
	}
	if cfg.General.DataDir == "" {
		t.Error("General.DataDir should have a default")
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.General.Language != "de" {
		t.Errorf("General.Language = %v, want de", cfg.General.Language)
	}
	if cfg.History.Backend != BackendSQLite {
		t.Errorf("History.Backend = %v, want %v", cfg.History.Backend, BackendSQLite)
	}
	if cfg.History.MaxEntries != DefaultMaxEntries {
		t.Errorf("History.MaxEntries = %v, want %v", cfg.History.MaxEntries, DefaultMaxEntries)
	}
	if cfg.Background.Debounce.Duration != 200*time.Millisecond {
		t.Errorf("Background.Debounce = %v, want 200ms", cfg.Background.Debounce.Duration)
	}
	if cfg.Display.Accent == "" {
		t.Error("Display.Accent should have a default")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Background.Alpha != 100 {
		t.Errorf("Background.Alpha = %v, want 100", cfg.Background.Alpha)
	}
	if !cfg.Display.ShowHistory {
		t.Error("Display.ShowHistory = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
name = "TestRECHNER"
data_dir = "` + tmpDir + `"
language = "en"

[history]
backend = "json"

[background]
alpha = 0
watch = true

[display]
show_history = false
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "TestRECHNER" {
		t.Errorf("General.Name = %v, want TestRECHNER", cfg.General.Name)
	}
	if cfg.General.Language != "en" {
		t.Errorf("General.Language = %v, want en", cfg.General.Language)
	}
	if cfg.Background.Alpha != 0 {
		t.Errorf("Background.Alpha = %v, want explicit 0", cfg.Background.Alpha)
	}
	if !cfg.Background.Watch {
		t.Error("Background.Watch = false, want true")
	}
	if cfg.Display.ShowHistory {
		t.Error("Display.ShowHistory = true, want explicit false")
	}
	if got, want := cfg.HistoryPath(), filepath.Join(tmpDir, "history.json"); got != want {
		t.Errorf("HistoryPath() = %v, want %v", got, want)
	}

	// Check defaults were applied for missing values
	if cfg.History.MaxEntries != DefaultMaxEntries {
		t.Errorf("History.MaxEntries = %v, want %v (default)", cfg.History.MaxEntries, DefaultMaxEntries)
	}
}

func TestLoad_UnsetAlphaDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[general]\nname = \"x\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Background.Alpha != 100 {
		t.Errorf("Background.Alpha = %v, want 100", cfg.Background.Alpha)
	}
	if !cfg.Display.ShowHistory {
		t.Error("Display.ShowHistory = false, want true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"backend", "[history]\nbackend = \"redis\"\n"},
		{"alpha", "[background]\nalpha = 150\n"},
		{"max entries", "[history]\nmax_entries = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			_, err := Load(configPath)
			if !mreerror.HasCode(err, mreerror.CodeConfigError) {
				t.Errorf("Load() error = %v, want config error", err)
			}
		})
	}
}

func TestConfig_HistoryPath(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
		want    string
	}{
		{"sqlite", BackendSQLite, "", filepath.Join("/data", "history.db")},
		{"json", BackendJSON, "", filepath.Join("/data", "history.json")},
		{"memory", BackendMemory, "", ""},
		{"explicit", BackendSQLite, "/tmp/h.db", "/tmp/h.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				General: GeneralConfig{DataDir: "/data"},
				History: HistoryConfig{Backend: tt.backend, Path: tt.path},
			}
			if got := cfg.HistoryPath(); got != tt.want {
				t.Errorf("HistoryPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("TEST_MRE_DIR", "/srv/mre")

	cfg := &Config{
		General: GeneralConfig{DataDir: "$TEST_MRE_DIR/data"},
		Keymap:  KeymapConfig{Path: "${TEST_MRE_DIR}/keys.yaml"},
	}

	cfg.expandEnvVars()

	if cfg.General.DataDir != "/srv/mre/data" {
		t.Errorf("DataDir = %v, want /srv/mre/data", cfg.General.DataDir)
	}
	if cfg.Keymap.Path != "/srv/mre/keys.yaml" {
		t.Errorf("Keymap.Path = %v, want /srv/mre/keys.yaml", cfg.Keymap.Path)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	originalWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "meinRECHNER" {
		t.Errorf("General.Name = %v, want defaults", cfg.General.Name)
	}
}

func TestLoadFromEnv_ExplicitPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/nonexistent/mre.toml")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("LoadFromEnv() expected error for missing explicit config")
	}
}
