// Package engine owns the timer state machine. A single mutex guards
// SessionInfo against the tick loop, the autosave loop, and command
// handlers; every public method is a total function over the session
// state, so "invalid" calls degrade to no-ops instead of errors.
package engine

import (
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/notify"
)

// Store persists session snapshots. Save failures must be tolerable: the
// engine logs them and keeps the in-memory state authoritative.
type Store interface {
	Save(info *model.SessionInfo) error
}

// Options contains runtime tuning for the engine loops.
type Options struct {
	TickInterval     time.Duration
	AutosaveInterval time.Duration
}

// Engine is the timer state machine plus its background schedulers.
type Engine struct {
	mu       sync.Mutex
	info     *model.SessionInfo
	config   model.Config
	store    Store
	notifier notify.Notifier
	options  Options
	events   []chan Event
	stopCh   chan struct{}
	running  bool
}

// New creates an engine around an existing session. The session is owned
// by the engine from this point on.
func New(info *model.SessionInfo, config model.Config, store Store, notifier notify.Notifier, options Options) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.AutosaveInterval <= 0 {
		options.AutosaveInterval = 5 * time.Second
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Engine{
		info:     info,
		config:   config,
		store:    store,
		notifier: notifier,
		options:  options,
		stopCh:   make(chan struct{}),
	}
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start launches the tick and autosave loops.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = true
	engine.mu.Unlock()

	go engine.runTicks()
	go engine.runAutosave()
}

// Stop terminates the background loops and closes observer channels.
// The loops run for the process lifetime; Stop exists for orderly quit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	close(engine.stopCh)
	engine.running = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a copy of the current session safe to read without
// the lock.
func (engine *Engine) Snapshot() model.SessionInfo {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.info.Clone()
}

// Config returns the active configuration.
func (engine *Engine) Config() model.Config {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config
}

// UpdateConfig swaps the runtime configuration. Counters already in
// flight keep their remaining time; zeroed tracks pick up the new
// durations on their next lazy initialization.
func (engine *Engine) UpdateConfig(config model.Config) {
	engine.mu.Lock()
	engine.config = config
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: engine.Snapshot().CurrentState, At: time.Now()})
}

// StartWork begins (or resumes into) a work interval.
func (engine *Engine) StartWork() {
	engine.mu.Lock()
	engine.startWorkLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// StartShortBreak begins a short break interval.
func (engine *Engine) StartShortBreak() {
	engine.mu.Lock()
	engine.startShortBreakLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// StartLongBreak begins a long break interval.
func (engine *Engine) StartLongBreak() {
	engine.mu.Lock()
	engine.startLongBreakLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// SkipToNext advances the pomodoro cycle without touching history.
func (engine *Engine) SkipToNext() {
	engine.mu.Lock()
	engine.skipToNextLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// Pause freezes a running interval. No-op when idle or already paused.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	engine.pauseLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

// Resume unfreezes a paused interval. No-op when not paused.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	engine.resumeLocked()
	state := engine.info.CurrentState
	engine.saveLocked()
	engine.mu.Unlock()
	engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
}

func (engine *Engine) startWorkLocked() {
	engine.info.CurrentState = model.StateWorking
	engine.info.IsFocusMode = true
	if engine.info.TimeRemainingSecs == 0 {
		engine.info.TimeRemainingSecs = engine.config.WorkDurationSecs()
	}
	engine.info.LastUpdated = time.Now().UTC()
}

func (engine *Engine) startShortBreakLocked() {
	engine.info.CurrentState = model.StateShortBreak
	engine.info.IsFocusMode = false
	if engine.info.RestRemainingSecs == 0 {
		engine.info.RestRemainingSecs = engine.config.ShortBreakDurationSecs()
	}
	engine.info.LastUpdated = time.Now().UTC()
}

func (engine *Engine) startLongBreakLocked() {
	engine.info.CurrentState = model.StateLongBreak
	engine.info.IsFocusMode = false
	engine.info.RestRemainingSecs = engine.config.LongBreakDurationSecs()
	engine.info.LastUpdated = time.Now().UTC()
}

func (engine *Engine) pauseLocked() {
	paused := engine.info.CurrentState.Pause()
	if paused == engine.info.CurrentState {
		return
	}
	engine.info.CurrentState = paused
	engine.info.LastUpdated = time.Now().UTC()
}

func (engine *Engine) resumeLocked() {
	resumed := engine.info.CurrentState.Resume()
	if resumed == engine.info.CurrentState {
		return
	}
	engine.info.CurrentState = resumed
	engine.info.LastUpdated = time.Now().UTC()
}

// resetLocked restores the active track's counter to its configured full
// duration and forces Idle, preserving the focus/rest mode.
func (engine *Engine) resetLocked() {
	info := engine.info
	switch {
	case info.CurrentState.IsWork() || info.CurrentState == model.StateIdle:
		info.TimeRemainingSecs = engine.config.WorkDurationSecs()
	case info.CurrentState == model.StateLongBreak || info.CurrentState == model.StateLongBreakPaused:
		info.RestRemainingSecs = engine.config.LongBreakDurationSecs()
	default:
		info.RestRemainingSecs = engine.config.ShortBreakDurationSecs()
	}
	info.CurrentState = model.StateIdle
	info.LastUpdated = time.Now().UTC()
}

// skipToNextLocked advances the pomodoro cycle: work archives a session
// count and moves into a break (long once the session quota is reached),
// any break moves back into a fresh work interval, and idle starts the
// first work session.
func (engine *Engine) skipToNextLocked() {
	info := engine.info
	switch {
	case info.CurrentState.IsWork():
		info.CompletedSessions++
		if info.CurrentSession >= engine.config.SessionsUntilLong {
			info.CurrentState = model.StateLongBreak
			info.CurrentSession = 1
			info.RestRemainingSecs = engine.config.LongBreakDurationSecs()
		} else {
			info.CurrentState = model.StateShortBreak
			info.CurrentSession++
			info.RestRemainingSecs = engine.config.ShortBreakDurationSecs()
		}
		info.IsFocusMode = false
	case info.CurrentState.IsBreak():
		info.CurrentState = model.StateWorking
		info.TimeRemainingSecs = engine.config.WorkDurationSecs()
		info.IsFocusMode = true
	default:
		info.CurrentState = model.StateWorking
		info.CurrentSession = 1
		info.IsFocusMode = true
		if info.TimeRemainingSecs == 0 {
			info.TimeRemainingSecs = engine.config.WorkDurationSecs()
		}
	}
	info.LastUpdated = time.Now().UTC()
}

func (engine *Engine) toggleLocked() {
	info := engine.info
	switch {
	case info.CurrentState == model.StateIdle:
		if info.IsFocusMode {
			engine.startWorkLocked()
		} else {
			engine.startShortBreakLocked()
		}
	case info.CurrentState.IsRunning():
		engine.pauseLocked()
	case info.CurrentState.IsPaused():
		engine.resumeLocked()
	}
}

func (engine *Engine) runTicks() {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-engine.stopCh:
			return
		case <-ticker.C:
			engine.tick()
		}
	}
}

func (engine *Engine) runAutosave() {
	ticker := time.NewTicker(engine.options.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-engine.stopCh:
			return
		case <-ticker.C:
			engine.mu.Lock()
			engine.saveLocked()
			engine.mu.Unlock()
		}
	}
}

// tick performs one fixed 1-second step. A suspended process undercounts
// by the suspension length; remaining time is never recomputed from
// LastUpdated.
func (engine *Engine) tick() {
	engine.mu.Lock()
	if !engine.info.CurrentState.IsRunning() {
		engine.mu.Unlock()
		return
	}

	info := engine.info
	completed := false
	if info.CurrentState.IsWork() {
		if info.TimeRemainingSecs > 0 {
			info.TimeRemainingSecs--
			info.LastUpdated = time.Now().UTC()
			completed = info.TimeRemainingSecs == 0
		}
	} else {
		if info.RestRemainingSecs > 0 {
			info.RestRemainingSecs--
			info.LastUpdated = time.Now().UTC()
			completed = info.RestRemainingSecs == 0
		}
	}

	if !completed {
		state := info.CurrentState
		engine.mu.Unlock()
		engine.emit(Event{Type: EventRefresh, State: state, At: time.Now()})
		return
	}

	// Completion protocol. The save happens inside the same critical
	// section as the Idle transition so a completed timer is never
	// observably unsaved.
	exited := info.CurrentState
	if engine.config.EnableNotifications {
		engine.notifier.Notify(notificationKind(exited))
	}
	info.CurrentState = model.StateIdle
	info.LastUpdated = time.Now().UTC()
	engine.saveLocked()

	switch {
	case exited.IsWork() && engine.config.AutoStartBreaks:
		// Re-enter the exited state so the cycle advance sees a
		// finished work interval rather than Idle.
		info.CurrentState = exited
		engine.skipToNextLocked()
		engine.saveLocked()
	case exited.IsBreak() && engine.config.AutoStartWork:
		engine.startWorkLocked()
		engine.saveLocked()
	}
	engine.mu.Unlock()

	logging.Logger.Info("timer completed", "state", string(exited))
	engine.emit(Event{Type: EventCompleted, State: exited, At: time.Now()})
	engine.emit(Event{Type: EventRefresh, State: engine.Snapshot().CurrentState, At: time.Now()})
}

func notificationKind(state model.TimerState) notify.Kind {
	switch state {
	case model.StateShortBreak:
		return notify.KindBreakComplete
	case model.StateLongBreak:
		return notify.KindLongBreakComplete
	}
	return notify.KindWorkComplete
}

func (engine *Engine) saveLocked() {
	if engine.store == nil {
		return
	}
	if err := engine.store.Save(engine.info); err != nil {
		logging.Logger.Error("save state", "error", err)
	}
}

// emit delivers the event to every subscriber without blocking. The
// sends happen under the mutex so they cannot interleave with Stop
// closing the channels.
func (engine *Engine) emit(event Event) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
