package engine

import (
	"time"

	"github.com/google/uuid"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

// Command names the operations the UI layer can trigger.
type Command string

const (
	CommandToggle        Command = "toggle"
	CommandSkip          Command = "skip"
	CommandReset         Command = "reset"
	CommandSwitchToFocus Command = "switchToFocus"
	CommandSwitchToRest  Command = "switchToRest"
	CommandHistoryPrev   Command = "navigateHistoryPrev"
	CommandHistoryNext   Command = "navigateHistoryNext"
	CommandExitHistory   Command = "exitHistory"
)

// Dispatch routes a zero-argument command. NewTimer and CommitLabel carry
// the label buffer and are invoked directly.
func (engine *Engine) Dispatch(command Command) {
	switch command {
	case CommandToggle:
		engine.Toggle()
	case CommandSkip:
		engine.Skip()
	case CommandReset:
		engine.Reset()
	case CommandSwitchToFocus:
		engine.SwitchToFocus()
	case CommandSwitchToRest:
		engine.SwitchToRest()
	case CommandHistoryPrev:
		engine.NavigateHistoryPrev()
	case CommandHistoryNext:
		engine.NavigateHistoryNext()
	case CommandExitHistory:
		engine.ExitHistoryView()
	default:
		logging.Logger.Warn("unknown command", "command", string(command))
	}
}

// Toggle is the primary affordance: start when idle, pause when running,
// resume when paused.
func (engine *Engine) Toggle() {
	engine.mu.Lock()
	engine.toggleLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// Skip archives the in-progress session to history, advances the cycle,
// and lands the history cursor on the entry it just archived.
func (engine *Engine) Skip() {
	engine.mu.Lock()
	info := engine.info
	if info.CurrentState != model.StateIdle {
		remaining := info.TimeRemainingSecs
		if info.CurrentState.IsBreak() {
			remaining = info.RestRemainingSecs
		}
		info.AddToHistory(info.CurrentID, info.CurrentLabel, remaining, info.CurrentState.DisplayName())
		engine.skipToNextLocked()
		info.NavigateHistoryPrev()
	} else {
		engine.skipToNextLocked()
	}
	state := info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// Reset restores the active track to its full duration and stops.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	engine.resetLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// NewTimer abandons the current session: idle, zeroed focus counter,
// fresh id, the committed label, live view.
func (engine *Engine) NewTimer(label string) {
	engine.mu.Lock()
	info := engine.info
	info.CurrentState = model.StateIdle
	info.TimeRemainingSecs = 0
	info.CurrentID = uuid.New().String()
	info.CurrentLabel = label
	info.ExitHistory()
	info.LastUpdated = time.Now().UTC()
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: model.StateIdle, At: time.Now()})
}

// SwitchToFocus activates the focus track. No-op if already in focus
// mode; otherwise any in-progress countdown stops.
func (engine *Engine) SwitchToFocus() {
	engine.mu.Lock()
	info := engine.info
	if info.IsFocusMode {
		engine.mu.Unlock()
		return
	}
	if info.TimeRemainingSecs == 0 {
		info.TimeRemainingSecs = engine.config.WorkDurationSecs()
	}
	info.IsFocusMode = true
	info.CurrentState = model.StateIdle
	info.LastUpdated = time.Now().UTC()
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: model.StateIdle, At: time.Now()})
}

// SwitchToRest activates the rest track. No-op if already in rest mode.
func (engine *Engine) SwitchToRest() {
	engine.mu.Lock()
	info := engine.info
	if !info.IsFocusMode {
		engine.mu.Unlock()
		return
	}
	if info.RestRemainingSecs == 0 {
		info.RestRemainingSecs = engine.config.ShortBreakDurationSecs()
	}
	info.IsFocusMode = false
	info.CurrentState = model.StateIdle
	info.LastUpdated = time.Now().UTC()
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: model.StateIdle, At: time.Now()})
}

// CommitLabel writes the externally edited label into the session.
func (engine *Engine) CommitLabel(label string) {
	engine.mu.Lock()
	engine.info.CurrentLabel = label
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// NavigateHistoryPrev steps the history cursor towards older entries.
func (engine *Engine) NavigateHistoryPrev() {
	engine.mu.Lock()
	engine.info.NavigateHistoryPrev()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// NavigateHistoryNext steps the history cursor towards newer entries.
func (engine *Engine) NavigateHistoryNext() {
	engine.mu.Lock()
	engine.info.NavigateHistoryNext()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// ExitHistoryView returns to the live timer view.
func (engine *Engine) ExitHistoryView() {
	engine.mu.Lock()
	engine.info.ExitHistory()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}
