package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDynamicConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestConfigWatcher_LoadsInitialConfig(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeDynamicConfig(t, path, `{
		"features": {"allowRemoteRebuild": false, "verboseApplyLogging": true},
		"limits": {"maxSkippedPositions": 25},
		"metadata": {"version": "v1"}
	}`)

	// Act
	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	// Assert
	current := watcher.Current()
	assert.False(t, current.Features.AllowRemoteRebuild)
	assert.True(t, current.Features.VerboseApplyLogging)
	assert.Equal(t, 25, current.Limits.MaxSkippedPositions)
	assert.Equal(t, "v1", current.Metadata.Version)
}

func TestConfigWatcher_ReloadsOnChange(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeDynamicConfig(t, path, `{"metadata": {"version": "v1"}}`)

	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	reloaded := make(chan *DynamicConfig, 1)
	watcher.OnChange(func(cfg *DynamicConfig) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	// The reload path debounces on mtime; make sure the rewrite moves it
	time.Sleep(10 * time.Millisecond)

	// Act
	writeDynamicConfig(t, path, `{"metadata": {"version": "v2"}}`)

	// Assert
	select {
	case cfg := <-reloaded:
		assert.Equal(t, "v2", cfg.Metadata.Version)
		assert.Equal(t, "v2", watcher.Current().Metadata.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("config change was not observed")
	}
}

func TestConfigWatcher_KeepsPreviousOnBadReload(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeDynamicConfig(t, path, `{"metadata": {"version": "v1"}}`)

	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	time.Sleep(10 * time.Millisecond)

	// Act
	writeDynamicConfig(t, path, `{not json`)
	time.Sleep(200 * time.Millisecond)

	// Assert
	assert.Equal(t, "v1", watcher.Current().Metadata.Version)
}

func TestNewConfigWatcher_MissingFile(t *testing.T) {
	// Act
	_, err := NewConfigWatcher(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

	// Assert
	require.Error(t, err)
}
