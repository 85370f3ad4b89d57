package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

const stateFileName = "state.json"

// StateStore persists session snapshots to a single JSON file under the
// user's data directory.
type StateStore struct {
	path string
}

// NewStateStore resolves the snapshot location for the given app name.
func NewStateStore(appName string) (*StateStore, error) {
	dataDir, err := userDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return &StateStore{path: filepath.Join(dataDir, appName, stateFileName)}, nil
}

// NewStateStoreAt uses an explicit snapshot path.
func NewStateStoreAt(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the snapshot file location.
func (store *StateStore) Path() string {
	return store.path
}

// Load reads the persisted session. Absence means first run; a snapshot
// that cannot be read or parsed is logged and replaced with a fresh
// default. Load never fails.
func (store *StateStore) Load() *model.SessionInfo {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Logger.Warn("read state snapshot", "path", store.path, "error", err)
		}
		return model.NewSessionInfo()
	}

	var info model.SessionInfo
	if err := json.Unmarshal(rawData, &info); err != nil {
		logging.Logger.Warn("parse state snapshot, starting fresh", "path", store.path, "error", err)
		return model.NewSessionInfo()
	}
	return &info
}

// Save serializes the full session to disk.
func (store *StateStore) Save(info *model.SessionInfo) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	serialized, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Clear removes the snapshot file if present.
func (store *StateStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// userDataDir returns the OS-standard per-user data directory.
func userDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return dataHome, nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Application Support"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return localAppData, nil
		}
	}
	return os.UserConfigDir()
}
