package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg, "missing file should fall back to defaults")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /tmp/custom.db\nlog_level: debug\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKMAN_DB_PATH", "/tmp/env.db")
	t.Setenv("TASKMAN_LOG_LEVEL", "warn")

	cfg := Default()
	applyEnv(cfg)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}
