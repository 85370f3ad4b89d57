package engine

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of engine event.
type EventType string

const (
	// EventRefresh asks observers to re-render from a fresh snapshot.
	EventRefresh EventType = "refresh"
	// EventCompleted reports that an interval counted down to zero.
	EventCompleted EventType = "completed"
)

// Event represents an engine update for observers.
type Event struct {
	Type EventType
	// State is the timer state after the update. For EventCompleted it is
	// the state that was exited.
	State model.TimerState
	At    time.Time
}
