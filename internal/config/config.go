// Package config loads the application configuration from the user's
// config directory, with environment variables taking precedence over
// the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DBPath:   filepath.Join(home, ".taskman", "tasks.db"),
		LogLevel: "info",
	}
}

// Load reads ~/.taskman/config.yaml, falling back to defaults when the
// file is missing. A .env file in the working directory and TASKMAN_*
// environment variables override file values.
func Load() (*Config, error) {
	// Optional .env for local overrides; absence is not an error
	_ = godotenv.Load()

	cfg := Default()
	home, err := os.UserHomeDir()
	if err == nil {
		if loaded, err := LoadFile(filepath.Join(home, ".taskman", "config.yaml")); err != nil {
			return nil, err
		} else if loaded != nil {
			cfg = loaded
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// LoadFile parses a config file. Returns (nil, nil) when the file does
// not exist, so callers can fall back to defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides config values from TASKMAN_* environment variables
func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKMAN_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKMAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKMAN_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
