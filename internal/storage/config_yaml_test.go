package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

const testAppName = "pomodoro-test"

// setupConfigDir points os.UserConfigDir at a temp directory.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("config dir override not supported on windows")
	}
	tempDir := t.TempDir()
	if runtime.GOOS == "darwin" {
		t.Setenv("HOME", tempDir)
		return filepath.Join(tempDir, "Library", "Application Support", testAppName)
	}
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	return filepath.Join(tempDir, testAppName)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	setupConfigDir(t)

	config, err := LoadConfig(testAppName)

	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	content := []byte("work_duration_min: 50\nsessions_until_long_break: 2\nenable_notifications: false\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileName), content, 0o644))

	config, err := LoadConfig(testAppName)

	require.NoError(t, err)
	assert.Equal(t, uint32(50), config.WorkDurationMin)
	assert.Equal(t, uint32(2), config.SessionsUntilLong)
	assert.False(t, config.EnableNotifications)
	// Untouched fields keep their defaults.
	assert.Equal(t, uint32(5), config.ShortBreakDurationMin)
	assert.False(t, config.AutoStartBreaks)
}

func TestLoadConfigIgnoresZeroDurations(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	content := []byte("work_duration_min: 0\nshort_break_duration_min: 0\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileName), content, 0o644))

	config, err := LoadConfig(testAppName)

	require.NoError(t, err)
	assert.Equal(t, uint32(25), config.WorkDurationMin)
	assert.Equal(t, uint32(5), config.ShortBreakDurationMin)
}

func TestLoadConfigMalformedFileFails(t *testing.T) {
	configDir := setupConfigDir(t)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileName), []byte(":\tnot yaml"), 0o644))

	_, err := LoadConfig(testAppName)

	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	setupConfigDir(t)

	config := model.DefaultConfig()
	config.LongBreakDurationMin = 20
	config.AutoStartBreaks = true
	require.NoError(t, SaveConfig(testAppName, config))

	loaded, err := LoadConfig(testAppName)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
