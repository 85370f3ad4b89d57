package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

const reloadDebounce = 250 * time.Millisecond

// ConfigWatcher hot-reloads the config file. Editors replace the file
// rather than rewriting it, so the watch is on the directory and events
// are debounced.
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	appName    string
	configPath string
	onChange   func(model.Config)

	debounceMu sync.Mutex
	debounce   *time.Timer

	stopCh   chan struct{}
	stopOnce sync.Once
}

// WatchConfig starts watching the config file for the given app. Each
// valid change is delivered to onChange; invalid or unreadable configs
// are logged and skipped, keeping the previous settings active.
func WatchConfig(appName string, onChange func(model.Config)) (*ConfigWatcher, error) {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	configWatcher := &ConfigWatcher{
		watcher:    watcher,
		appName:    appName,
		configPath: configPath,
		onChange:   onChange,
		stopCh:     make(chan struct{}),
	}
	go configWatcher.eventLoop()
	return configWatcher, nil
}

// Stop closes the watcher. Safe to call multiple times.
func (configWatcher *ConfigWatcher) Stop() {
	configWatcher.stopOnce.Do(func() {
		close(configWatcher.stopCh)
		configWatcher.watcher.Close()

		configWatcher.debounceMu.Lock()
		if configWatcher.debounce != nil {
			configWatcher.debounce.Stop()
		}
		configWatcher.debounceMu.Unlock()
	})
}

func (configWatcher *ConfigWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-configWatcher.watcher.Events:
			if !ok {
				return
			}
			if event.Name != configWatcher.configPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				configWatcher.resetDebounce()
			}
		case err, ok := <-configWatcher.watcher.Errors:
			if !ok {
				return
			}
			logging.Logger.Warn("config watcher", "error", err)
		case <-configWatcher.stopCh:
			return
		}
	}
}

func (configWatcher *ConfigWatcher) resetDebounce() {
	configWatcher.debounceMu.Lock()
	defer configWatcher.debounceMu.Unlock()

	if configWatcher.debounce != nil {
		configWatcher.debounce.Reset(reloadDebounce)
		return
	}
	configWatcher.debounce = time.AfterFunc(reloadDebounce, configWatcher.reload)
}

func (configWatcher *ConfigWatcher) reload() {
	config, err := LoadConfig(configWatcher.appName)
	if err != nil {
		logging.Logger.Warn("reload config", "error", err)
		return
	}
	if err := config.Validate(); err != nil {
		logging.Logger.Warn("reloaded config invalid, keeping previous", "error", err)
		return
	}
	logging.Logger.Info("config reloaded", "path", configWatcher.configPath)
	configWatcher.onChange(config)
}
