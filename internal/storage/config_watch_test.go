package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func TestWatchConfigDeliversValidChanges(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	changes := make(chan model.Config, 1)
	watcher, err := WatchConfig(testAppName, func(config model.Config) {
		select {
		case changes <- config:
		default:
		}
	})
	require.NoError(t, err)
	defer watcher.Stop()

	config := model.DefaultConfig()
	config.WorkDurationMin = 45
	require.NoError(t, SaveConfig(testAppName, config))

	select {
	case updated := <-changes:
		assert.Equal(t, uint32(45), updated.WorkDurationMin)
	case <-time.After(3 * time.Second):
		t.Fatal("config change not delivered")
	}
}

func TestWatchConfigSkipsInvalidChanges(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	changes := make(chan model.Config, 1)
	watcher, err := WatchConfig(testAppName, func(config model.Config) {
		changes <- config
	})
	require.NoError(t, err)
	defer watcher.Stop()

	configPath, err := ConfigPath(testAppName)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, []byte(":\tnot yaml"), 0o644))

	select {
	case <-changes:
		t.Fatal("invalid config should not be delivered")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatchConfigStopIsIdempotent(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	watcher, err := WatchConfig(testAppName, func(model.Config) {})
	require.NoError(t, err)

	watcher.Stop()
	watcher.Stop()
}
