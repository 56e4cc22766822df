// ABOUTME: Tests for configuration loading, saving, and defaults.
// ABOUTME: Verifies XDG paths, ~ expansion, and storage construction.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetPort() != DefaultPort {
		t.Errorf("GetPort() = %d, want %d", cfg.GetPort(), DefaultPort)
	}
	if cfg.GetLogLevel() != "info" {
		t.Errorf("GetLogLevel() = %q, want info", cfg.GetLogLevel())
	}

	os.Setenv("CREATINE_LOG_LEVEL", "debug")
	defer os.Unsetenv("CREATINE_LOG_LEVEL")
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() with env = %q, want debug", cfg.GetLogLevel())
	}

	tmpDir := t.TempDir()
	os.Setenv("XDG_DATA_HOME", tmpDir)
	defer os.Unsetenv("XDG_DATA_HOME")

	want := filepath.Join(tmpDir, "creatine")
	if cfg.GetDataDir() != want {
		t.Errorf("GetDataDir() = %q, want %q", cfg.GetDataDir(), want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/studies", filepath.Join(home, "studies")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer os.Unsetenv("XDG_CONFIG_HOME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "" || cfg.Port != 0 || cfg.LogLevel != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer os.Unsetenv("XDG_CONFIG_HOME")

	cfg := &Config{DataDir: "/tmp/study", Port: 9000, LogLevel: "debug"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/tmp/study" || loaded.Port != 9000 || loaded.LogLevel != "debug" {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
}

func TestOpenStorage(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(cfg.DataDir, "creatine_study.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
