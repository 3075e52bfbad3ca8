package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableMetrics)
	assert.False(t, cfg.EnableTracing)
	assert.True(t, cfg.RebuildOnStart)
	assert.Equal(t, uint32(5), cfg.Breaker.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Interval)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REBUILD_ON_START", "false")
	t.Setenv("BREAKER_INTERVAL", "10s")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "0.5")

	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.RebuildOnStart)
	assert.Equal(t, 10*time.Second, cfg.Breaker.Interval)
	assert.InDelta(t, 0.5, cfg.Breaker.FailureThreshold, 1e-9)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server_address: \":7070\"\nlog_level: debug\nenable_cors: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("CONFIG_FILE", path)

	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EnableCORS)
	// untouched fields keep their env defaults
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "testing")

	// Act
	_, err := LoadConfig()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	// Arrange
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	// Act
	_, err := LoadConfig()

	// Assert
	require.Error(t, err)
}
