// ABOUTME: Study toolkit configuration management.
// ABOUTME: Handles settings persistence and storage construction.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/strengthlab/creatine/internal/storage"
)

// Config stores creatine toolkit configuration.
type Config struct {
	// DataDir is the root directory for the SQLite database.
	// Supports ~ expansion. Defaults to ~/.local/share/creatine.
	DataDir string `json:"data_dir,omitempty"`

	// Port is the dashboard listen port. Defaults to 8050.
	Port int `json:"port,omitempty"`

	// LogLevel sets log verbosity: debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultPort is the dashboard port when none is configured.
const DefaultPort = 8050

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetPort returns the configured dashboard port.
func (c *Config) GetPort() int {
	if c.Port <= 0 {
		return DefaultPort
	}
	return c.Port
}

// GetLogLevel returns the log level: CREATINE_LOG_LEVEL wins over the config
// file, defaulting to info.
func (c *Config) GetLogLevel() string {
	if env := os.Getenv("CREATINE_LOG_LEVEL"); env != "" {
		return env
	}
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the study database under the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "creatine_study.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "creatine", "config.json")
}

// Load reads config from disk. A missing file yields defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
