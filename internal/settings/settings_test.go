package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Alpha != 100 {
		t.Errorf("Alpha = %v, want 100", s.Alpha)
	}
	if !s.ShowHistory {
		t.Error("ShowHistory = false, want true")
	}
	if s.BackgroundPath != "" {
		t.Errorf("BackgroundPath = %q, want empty", s.BackgroundPath)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	want := &Settings{
		BackgroundPath: "/tmp/bg.png",
		Alpha:          40,
		ShowHistory:    false,
		Language:       "en",
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	// files written by older versions only carry path and alpha
	path := filepath.Join(t.TempDir(), "settings.json")
	os.WriteFile(path, []byte(`{"background_path": "bg.jpg", "alpha": 250}`), 0644)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.BackgroundPath != "bg.jpg" {
		t.Errorf("BackgroundPath = %q, want bg.jpg", s.BackgroundPath)
	}
	if s.Alpha != 100 {
		t.Errorf("Alpha = %v, want clamped 100", s.Alpha)
	}
	if !s.ShowHistory {
		t.Error("ShowHistory should keep its default")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	os.WriteFile(path, []byte("{broken"), 0644)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *s != *Defaults() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Update(path, func(s *Settings) {
		s.Alpha = -5
		s.BackgroundPath = "wall.png"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if s.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", s.Alpha)
	}

	reloaded, _ := Load(path)
	if reloaded.BackgroundPath != "wall.png" {
		t.Errorf("BackgroundPath = %q, want wall.png", reloaded.BackgroundPath)
	}
}

func TestDefaultPath(t *testing.T) {
	if filepath.Base(DefaultPath()) != "settings.json" {
		t.Errorf("DefaultPath() = %v", DefaultPath())
	}
}
