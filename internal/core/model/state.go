package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimerState represents the current timer mode.
type TimerState string

const (
	StateIdle            TimerState = "Idle"
	StateWorking         TimerState = "Working"
	StateWorkPaused      TimerState = "WorkPaused"
	StateShortBreak      TimerState = "ShortBreak"
	StateBreakPaused     TimerState = "BreakPaused"
	StateLongBreak       TimerState = "LongBreak"
	StateLongBreakPaused TimerState = "LongBreakPaused"
)

// IsRunning reports whether the countdown is actively ticking.
func (state TimerState) IsRunning() bool {
	return state == StateWorking || state == StateShortBreak || state == StateLongBreak
}

// IsPaused reports whether the timer is frozen mid-interval.
func (state TimerState) IsPaused() bool {
	return state == StateWorkPaused || state == StateBreakPaused || state == StateLongBreakPaused
}

// IsWork reports whether the focus track is active.
func (state TimerState) IsWork() bool {
	return state == StateWorking || state == StateWorkPaused
}

// IsBreak reports whether a rest interval (running or paused) is active.
func (state TimerState) IsBreak() bool {
	switch state {
	case StateShortBreak, StateBreakPaused, StateLongBreak, StateLongBreakPaused:
		return true
	}
	return false
}

// Pause maps a running state to its paused counterpart. Any other state
// is returned unchanged.
func (state TimerState) Pause() TimerState {
	switch state {
	case StateWorking:
		return StateWorkPaused
	case StateShortBreak:
		return StateBreakPaused
	case StateLongBreak:
		return StateLongBreakPaused
	}
	return state
}

// Resume is the inverse of Pause. Any non-paused state is returned
// unchanged.
func (state TimerState) Resume() TimerState {
	switch state {
	case StateWorkPaused:
		return StateWorking
	case StateBreakPaused:
		return StateShortBreak
	case StateLongBreakPaused:
		return StateLongBreak
	}
	return state
}

// DisplayName returns the human-readable name shown in the UI and stamped
// on archived sessions.
func (state TimerState) DisplayName() string {
	switch state {
	case StateWorking, StateWorkPaused:
		return "Work Session"
	case StateShortBreak, StateBreakPaused:
		return "Short Break"
	case StateLongBreak, StateLongBreakPaused:
		return "Long Break"
	}
	return "Ready"
}

// HistoryLimit bounds the completed-timer log.
const HistoryLimit = 50

// CompletedTimer is an archived session entry. Immutable once created.
type CompletedTimer struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	DurationSecs uint32    `json:"duration_secs"`
	SessionType  string    `json:"session_type"`
	CompletedAt  time.Time `json:"completed_at"`
}

// SessionInfo is the shared mutable timer state. It is owned by the
// engine and must only be touched while holding the engine lock.
type SessionInfo struct {
	CurrentState      TimerState       `json:"current_state"`
	TimeRemainingSecs uint32           `json:"time_remaining_secs"`
	RestRemainingSecs uint32           `json:"rest_time_remaining_secs"`
	IsFocusMode       bool             `json:"is_focus_mode"`
	CurrentSession    uint32           `json:"current_session"`
	CompletedSessions uint32           `json:"completed_sessions"`
	LastUpdated       time.Time        `json:"last_updated"`
	CurrentID         string           `json:"current_id"`
	CurrentLabel      string           `json:"current_label"`
	History           []CompletedTimer `json:"history"`
	HistoryIndex      *int             `json:"history_index"`
}

// NewSessionInfo returns a fresh default session.
func NewSessionInfo() *SessionInfo {
	return &SessionInfo{
		CurrentState:   StateIdle,
		IsFocusMode:    true,
		CurrentSession: 1,
		LastUpdated:    time.Now().UTC(),
		CurrentID:      uuid.New().String(),
	}
}

// AddToHistory archives a completed session, evicting the oldest entry
// past the history limit, and rotates CurrentID for the next session.
func (info *SessionInfo) AddToHistory(id, label string, durationSecs uint32, sessionType string) {
	info.History = append(info.History, CompletedTimer{
		ID:           id,
		Label:        label,
		DurationSecs: durationSecs,
		SessionType:  sessionType,
		CompletedAt:  time.Now().UTC(),
	})
	if len(info.History) > HistoryLimit {
		info.History = info.History[len(info.History)-HistoryLimit:]
	}
	info.CurrentID = uuid.New().String()
}

// IsViewingHistory reports whether the history cursor is set.
func (info *SessionInfo) IsViewingHistory() bool {
	return info.HistoryIndex != nil
}

// DisplayedTimer returns the history entry under the cursor, or nil when
// viewing the live timer.
func (info *SessionInfo) DisplayedTimer() *CompletedTimer {
	if info.HistoryIndex == nil {
		return nil
	}
	index := *info.HistoryIndex
	if index < 0 || index >= len(info.History) {
		return nil
	}
	return &info.History[index]
}

// NavigateHistoryPrev moves the cursor backwards, wrapping to the newest
// entry from the live view or from index zero. No-op on empty history.
func (info *SessionInfo) NavigateHistoryPrev() {
	if len(info.History) == 0 {
		return
	}
	next := len(info.History) - 1
	if info.HistoryIndex != nil && *info.HistoryIndex > 0 {
		next = *info.HistoryIndex - 1
	}
	info.HistoryIndex = &next
}

// NavigateHistoryNext moves the cursor forwards, wrapping to the oldest
// entry from the live view or past the end. No-op on empty history.
func (info *SessionInfo) NavigateHistoryNext() {
	if len(info.History) == 0 {
		return
	}
	next := 0
	if info.HistoryIndex != nil && *info.HistoryIndex < len(info.History)-1 {
		next = *info.HistoryIndex + 1
	}
	info.HistoryIndex = &next
}

// ExitHistory returns to the live timer view.
func (info *SessionInfo) ExitHistory() {
	info.HistoryIndex = nil
}

// ActiveRemaining returns the counter for the currently displayed track.
func (info *SessionInfo) ActiveRemaining() uint32 {
	if info.CurrentState.IsWork() || (info.CurrentState == StateIdle && info.IsFocusMode) {
		return info.TimeRemainingSecs
	}
	return info.RestRemainingSecs
}

// FormatTime renders the active counter as MM:SS.
func (info *SessionInfo) FormatTime() string {
	remaining := info.ActiveRemaining()
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// SessionLabel describes the current position in the pomodoro cycle.
func (info *SessionInfo) SessionLabel(sessionsUntilLong uint32) string {
	switch {
	case info.CurrentState.IsBreak():
		return info.CurrentState.DisplayName()
	default:
		return fmt.Sprintf("Session %d/%d", info.CurrentSession, sessionsUntilLong)
	}
}

// ProgressPercent reports elapsed progress through an interval of the
// given total length.
func (info *SessionInfo) ProgressPercent(totalDurationSecs uint32) float64 {
	if totalDurationSecs == 0 {
		return 0
	}
	remaining := info.ActiveRemaining()
	if remaining > totalDurationSecs {
		remaining = totalDurationSecs
	}
	elapsed := totalDurationSecs - remaining
	return float64(elapsed) / float64(totalDurationSecs) * 100
}

// Clone returns a deep copy safe to hand outside the engine lock.
func (info *SessionInfo) Clone() SessionInfo {
	clone := *info
	clone.History = append([]CompletedTimer(nil), info.History...)
	if info.HistoryIndex != nil {
		index := *info.HistoryIndex
		clone.HistoryIndex = &index
	}
	return clone
}
