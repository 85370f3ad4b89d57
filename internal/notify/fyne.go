package notify

import (
	"fyne.io/fyne/v2"

	"pomodoro/internal/logging"
)

// FyneNotifier delivers notifications through the running fyne app.
type FyneNotifier struct {
	app fyne.App
}

// NewFyne creates a notifier backed by the given fyne app.
func NewFyne(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

// Notify implements Notifier.
func (notifier *FyneNotifier) Notify(kind Kind) {
	summary, body := messageFor(kind)
	if summary == "" {
		logging.Logger.Warn("unknown notification kind", "kind", string(kind))
		return
	}
	notifier.app.SendNotification(fyne.NewNotification(summary, body))
}

func messageFor(kind Kind) (summary, body string) {
	switch kind {
	case KindWorkComplete:
		return "Work Session Complete!", "Time for a break. Great job!"
	case KindBreakComplete:
		return "Break Complete!", "Ready to focus again?"
	case KindLongBreakComplete:
		return "Long Break Complete!", "You've completed a full Pomodoro cycle. Well done!"
	}
	return "", ""
}
