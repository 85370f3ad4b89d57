// Package notify delivers interval-completion notifications. Delivery is
// best effort: failures are logged and never surfaced to the caller.
package notify

// Kind identifies which interval just completed.
type Kind string

const (
	KindWorkComplete      Kind = "work_complete"
	KindBreakComplete     Kind = "break_complete"
	KindLongBreakComplete Kind = "long_break_complete"
)

// Notifier sends a desktop notification for the given kind.
type Notifier interface {
	Notify(kind Kind)
}

// Nop discards all notifications. Used when notifications are disabled
// and in tests.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(Kind) {}
