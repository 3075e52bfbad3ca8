package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher watches a dynamic configuration file for changes
type ConfigWatcher struct {
	path        string
	watcher     *fsnotify.Watcher
	current     *DynamicConfig
	mu          sync.RWMutex
	onChange    []func(*DynamicConfig)
	logger      *zap.Logger
	stopCh      chan struct{}
	lastModTime time.Time
}

// DynamicConfig represents runtime-changeable configuration
type DynamicConfig struct {
	Features Features       `json:"features"`
	Limits   Limits         `json:"limits"`
	Metadata ConfigMetadata `json:"metadata"`
}

// Features holds runtime-toggleable behavior
type Features struct {
	AllowRemoteRebuild  bool `json:"allowRemoteRebuild"`
	VerboseApplyLogging bool `json:"verboseApplyLogging"`
}

// Limits holds application limits
type Limits struct {
	MaxSkippedPositions int `json:"maxSkippedPositions"`
}

// ConfigMetadata holds metadata about the configuration
type ConfigMetadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// DefaultDynamicConfig returns the dynamic config used when no file is
// present.
func DefaultDynamicConfig() *DynamicConfig {
	return &DynamicConfig{
		Features: Features{
			AllowRemoteRebuild: true,
		},
		Limits: Limits{
			MaxSkippedPositions: 100,
		},
	}
}

// NewConfigWatcher creates a new configuration watcher
func NewConfigWatcher(configPath string, logger *zap.Logger) (*ConfigWatcher, error) {
	// Load initial configuration
	config, err := loadDynamicConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Add the config file to watcher
	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch config directory", zap.Error(err))
	}

	cw := &ConfigWatcher{
		path:    configPath,
		watcher: watcher,
		current: config,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}

	go cw.watchLoop()

	logger.Info("Config watcher started",
		zap.String("path", configPath),
		zap.String("version", config.Metadata.Version))

	return cw, nil
}

// Current returns the current dynamic configuration.
func (cw *ConfigWatcher) Current() *DynamicConfig {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.current
}

// OnChange registers a callback invoked after each successful reload.
func (cw *ConfigWatcher) OnChange(fn func(*DynamicConfig)) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.onChange = append(cw.onChange, fn)
}

// Stop stops watching for changes.
func (cw *ConfigWatcher) Stop() {
	close(cw.stopCh)
	cw.watcher.Close()
}

func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}

func (cw *ConfigWatcher) reload() {
	info, err := os.Stat(cw.path)
	if err != nil {
		cw.logger.Warn("Failed to stat config file", zap.Error(err))
		return
	}

	cw.mu.Lock()
	// Editors fire several events per save; skip reloads for the same
	// modification time.
	if !info.ModTime().After(cw.lastModTime) {
		cw.mu.Unlock()
		return
	}
	cw.lastModTime = info.ModTime()
	cw.mu.Unlock()

	config, err := loadDynamicConfig(cw.path)
	if err != nil {
		cw.logger.Error("Failed to reload config, keeping previous", zap.Error(err))
		return
	}

	cw.mu.Lock()
	cw.current = config
	callbacks := append([]func(*DynamicConfig){}, cw.onChange...)
	cw.mu.Unlock()

	cw.logger.Info("Reloaded dynamic config",
		zap.String("version", config.Metadata.Version))

	for _, fn := range callbacks {
		fn(config)
	}
}

func loadDynamicConfig(path string) (*DynamicConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultDynamicConfig()
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse dynamic config: %w", err)
	}
	return config, nil
}
