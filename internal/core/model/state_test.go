package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerStatePredicates(t *testing.T) {
	tests := []struct {
		state     TimerState
		isRunning bool
		isPaused  bool
		isWork    bool
		isBreak   bool
	}{
		{StateIdle, false, false, false, false},
		{StateWorking, true, false, true, false},
		{StateWorkPaused, false, true, true, false},
		{StateShortBreak, true, false, false, true},
		{StateBreakPaused, false, true, false, true},
		{StateLongBreak, true, false, false, true},
		{StateLongBreakPaused, false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.isRunning, tt.state.IsRunning())
			assert.Equal(t, tt.isPaused, tt.state.IsPaused())
			assert.Equal(t, tt.isWork, tt.state.IsWork())
			assert.Equal(t, tt.isBreak, tt.state.IsBreak())
		})
	}
}

func TestPauseResumeMapping(t *testing.T) {
	tests := []struct {
		state  TimerState
		paused TimerState
	}{
		{StateWorking, StateWorkPaused},
		{StateShortBreak, StateBreakPaused},
		{StateLongBreak, StateLongBreakPaused},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.paused, tt.state.Pause())
			assert.Equal(t, tt.state, tt.paused.Resume())
		})
	}
}

func TestPauseResumeTotalOnIllegalInput(t *testing.T) {
	// Illegal transitions return the state unchanged instead of failing.
	assert.Equal(t, StateIdle, StateIdle.Pause())
	assert.Equal(t, StateIdle, StateIdle.Resume())
	assert.Equal(t, StateWorkPaused, StateWorkPaused.Pause())
	assert.Equal(t, StateWorking, StateWorking.Resume())
}

func TestAddToHistoryBoundsAtLimit(t *testing.T) {
	info := NewSessionInfo()

	for i := 0; i < HistoryLimit+1; i++ {
		info.AddToHistory(fmt.Sprintf("id-%d", i), "label", 60, "Work Session")
	}

	require.Len(t, info.History, HistoryLimit)
	assert.Equal(t, "id-1", info.History[0].ID, "oldest entry should be evicted")
	assert.Equal(t, fmt.Sprintf("id-%d", HistoryLimit), info.History[HistoryLimit-1].ID)
}

func TestAddToHistoryRotatesCurrentID(t *testing.T) {
	info := NewSessionInfo()
	previousID := info.CurrentID

	info.AddToHistory(previousID, "", 10, "Short Break")

	assert.NotEqual(t, previousID, info.CurrentID)
	assert.NotEmpty(t, info.CurrentID)
}

func TestNavigateHistoryPrevWraps(t *testing.T) {
	info := NewSessionInfo()
	for i := 0; i < 3; i++ {
		info.AddToHistory(fmt.Sprintf("id-%d", i), "", 10, "Work Session")
	}

	wantSequence := []int{2, 1, 0, 2}
	for _, want := range wantSequence {
		info.NavigateHistoryPrev()
		require.NotNil(t, info.HistoryIndex)
		assert.Equal(t, want, *info.HistoryIndex)
	}
}

func TestNavigateHistoryNextWraps(t *testing.T) {
	info := NewSessionInfo()
	for i := 0; i < 3; i++ {
		info.AddToHistory(fmt.Sprintf("id-%d", i), "", 10, "Work Session")
	}

	wantSequence := []int{0, 1, 2, 0}
	for _, want := range wantSequence {
		info.NavigateHistoryNext()
		require.NotNil(t, info.HistoryIndex)
		assert.Equal(t, want, *info.HistoryIndex)
	}
}

func TestNavigateHistoryEmptyIsNoop(t *testing.T) {
	info := NewSessionInfo()

	info.NavigateHistoryPrev()
	assert.Nil(t, info.HistoryIndex)

	info.NavigateHistoryNext()
	assert.Nil(t, info.HistoryIndex)
}

func TestDisplayedTimer(t *testing.T) {
	info := NewSessionInfo()
	assert.Nil(t, info.DisplayedTimer())
	assert.False(t, info.IsViewingHistory())

	info.AddToHistory("id-0", "write tests", 120, "Work Session")
	info.NavigateHistoryPrev()

	require.True(t, info.IsViewingHistory())
	displayed := info.DisplayedTimer()
	require.NotNil(t, displayed)
	assert.Equal(t, "id-0", displayed.ID)
	assert.Equal(t, "write tests", displayed.Label)

	info.ExitHistory()
	assert.Nil(t, info.DisplayedTimer())
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name      string
		remaining uint32
		want      string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 59, "00:59"},
		{"exact minutes", 300, "05:00"},
		{"full work session", 1500, "25:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewSessionInfo()
			info.TimeRemainingSecs = tt.remaining
			assert.Equal(t, tt.want, info.FormatTime())
		})
	}
}

func TestFormatTimeUsesActiveTrack(t *testing.T) {
	info := NewSessionInfo()
	info.TimeRemainingSecs = 1500
	info.RestRemainingSecs = 300

	info.CurrentState = StateWorking
	assert.Equal(t, "25:00", info.FormatTime())

	info.CurrentState = StateShortBreak
	assert.Equal(t, "05:00", info.FormatTime())

	info.CurrentState = StateIdle
	info.IsFocusMode = false
	assert.Equal(t, "05:00", info.FormatTime())
}

func TestSessionLabel(t *testing.T) {
	info := NewSessionInfo()
	info.CurrentSession = 2

	info.CurrentState = StateWorking
	assert.Equal(t, "Session 2/4", info.SessionLabel(4))

	info.CurrentState = StateIdle
	assert.Equal(t, "Session 2/4", info.SessionLabel(4))

	info.CurrentState = StateShortBreak
	assert.Equal(t, "Short Break", info.SessionLabel(4))

	info.CurrentState = StateLongBreakPaused
	assert.Equal(t, "Long Break", info.SessionLabel(4))
}

func TestProgressPercent(t *testing.T) {
	info := NewSessionInfo()
	info.CurrentState = StateWorking

	info.TimeRemainingSecs = 100
	assert.Equal(t, float64(0), info.ProgressPercent(100))

	info.TimeRemainingSecs = 25
	assert.Equal(t, float64(75), info.ProgressPercent(100))

	info.TimeRemainingSecs = 0
	assert.Equal(t, float64(100), info.ProgressPercent(100))

	assert.Equal(t, float64(0), info.ProgressPercent(0))
}

func TestCloneIsIndependent(t *testing.T) {
	info := NewSessionInfo()
	info.AddToHistory("id-0", "", 10, "Work Session")
	info.NavigateHistoryPrev()

	clone := info.Clone()
	clone.History[0].Label = "changed"
	*clone.HistoryIndex = 99

	assert.Empty(t, info.History[0].Label)
	assert.Equal(t, 0, *info.HistoryIndex)
}
