package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func newTempStore(t *testing.T) *StateStore {
	t.Helper()
	return NewStateStoreAt(filepath.Join(t.TempDir(), "state.json"))
}

func TestStateRoundTrip(t *testing.T) {
	store := newTempStore(t)

	info := model.NewSessionInfo()
	info.CurrentState = model.StateWorkPaused
	info.TimeRemainingSecs = 1234
	info.RestRemainingSecs = 56
	info.IsFocusMode = true
	info.CurrentSession = 3
	info.CompletedSessions = 7
	info.CurrentLabel = "write the report"
	info.AddToHistory("id-1", "first", 1500, "Work Session")
	info.AddToHistory("id-2", "second", 300, "Short Break")
	info.NavigateHistoryPrev()

	require.NoError(t, store.Save(info))
	loaded := store.Load()

	assert.Equal(t, info.CurrentState, loaded.CurrentState)
	assert.Equal(t, info.TimeRemainingSecs, loaded.TimeRemainingSecs)
	assert.Equal(t, info.RestRemainingSecs, loaded.RestRemainingSecs)
	assert.Equal(t, info.IsFocusMode, loaded.IsFocusMode)
	assert.Equal(t, info.CurrentSession, loaded.CurrentSession)
	assert.Equal(t, info.CompletedSessions, loaded.CompletedSessions)
	assert.Equal(t, info.CurrentID, loaded.CurrentID)
	assert.Equal(t, info.CurrentLabel, loaded.CurrentLabel)
	assert.True(t, info.LastUpdated.Equal(loaded.LastUpdated))

	require.Len(t, loaded.History, 2)
	assert.Equal(t, "id-1", loaded.History[0].ID)
	assert.Equal(t, uint32(300), loaded.History[1].DurationSecs)
	assert.True(t, info.History[0].CompletedAt.Equal(loaded.History[0].CompletedAt))

	require.NotNil(t, loaded.HistoryIndex)
	assert.Equal(t, 1, *loaded.HistoryIndex)
}

func TestLoadMissingSnapshotReturnsFresh(t *testing.T) {
	store := newTempStore(t)

	info := store.Load()

	require.NotNil(t, info)
	assert.Equal(t, model.StateIdle, info.CurrentState)
	assert.Equal(t, uint32(1), info.CurrentSession)
	assert.NotEmpty(t, info.CurrentID)
	assert.Empty(t, info.History)
	assert.Nil(t, info.HistoryIndex)
}

func TestLoadMalformedSnapshotReturnsFresh(t *testing.T) {
	store := newTempStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	info := store.Load()

	require.NotNil(t, info)
	assert.Equal(t, model.StateIdle, info.CurrentState)
}

func TestSaveCreatesDataDirectory(t *testing.T) {
	store := NewStateStoreAt(filepath.Join(t.TempDir(), "nested", "dir", "state.json"))

	require.NoError(t, store.Save(model.NewSessionInfo()))

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestClearRemovesSnapshot(t *testing.T) {
	store := newTempStore(t)
	require.NoError(t, store.Save(model.NewSessionInfo()))

	require.NoError(t, store.Clear())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an absent snapshot is not an error.
	assert.NoError(t, store.Clear())
}
