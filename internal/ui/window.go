// Package ui renders the floating timer window. All timer data comes
// from engine snapshots; the window only issues commands back.
package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/engine"
	"pomodoro/internal/core/model"
)

const labelMaxLen = 30

// Window is the main timer window.
type Window struct {
	window fyne.Window
	engine *engine.Engine

	timeText     *canvas.Text
	stateText    *canvas.Text
	sessionLabel *widget.Label
	historyLabel *widget.Label
	labelEntry   *widget.Entry
	toggleButton *widget.Button
	modeButton   *widget.Button
}

// New builds the timer window around the engine.
func New(app fyne.App, timerEngine *engine.Engine) *Window {
	window := app.NewWindow("Pomodoro")
	window.Resize(fyne.NewSize(320, 280))
	window.SetFixedSize(true)

	timeText := canvas.NewText("--:--", stateColor(model.StateIdle))
	timeText.TextSize = 48
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeText.Alignment = fyne.TextAlignCenter

	stateText := canvas.NewText("Ready", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	stateText.TextSize = 18
	stateText.TextStyle = fyne.TextStyle{Bold: true}
	stateText.Alignment = fyne.TextAlignCenter

	sessionLabel := widget.NewLabel("")
	sessionLabel.Alignment = fyne.TextAlignCenter

	historyLabel := widget.NewLabel("")
	historyLabel.Alignment = fyne.TextAlignCenter
	historyLabel.Wrapping = fyne.TextWrapWord

	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("What are you working on?")

	timerWindow := &Window{
		window:       window,
		engine:       timerEngine,
		timeText:     timeText,
		stateText:    stateText,
		sessionLabel: sessionLabel,
		historyLabel: historyLabel,
		labelEntry:   labelEntry,
	}

	labelEntry.OnSubmitted = func(text string) {
		timerEngine.CommitLabel(clampLabel(text))
		window.Canvas().Unfocus()
	}

	timerWindow.toggleButton = widget.NewButton("Start", func() {
		timerEngine.Dispatch(engine.CommandToggle)
	})
	skipButton := widget.NewButton("Skip", func() {
		timerEngine.Dispatch(engine.CommandSkip)
	})
	resetButton := widget.NewButton("Reset", func() {
		timerEngine.Dispatch(engine.CommandReset)
	})
	newButton := widget.NewButton("New", func() {
		timerEngine.NewTimer(clampLabel(labelEntry.Text))
		labelEntry.SetText("")
	})
	timerWindow.modeButton = widget.NewButton("Rest", func() {
		if timerEngine.Snapshot().IsFocusMode {
			timerEngine.Dispatch(engine.CommandSwitchToRest)
		} else {
			timerEngine.Dispatch(engine.CommandSwitchToFocus)
		}
	})

	buttons := container.NewGridWithColumns(5,
		timerWindow.toggleButton, skipButton, resetButton, newButton, timerWindow.modeButton)

	content := container.NewVBox(
		stateText,
		timeText,
		sessionLabel,
		labelEntry,
		buttons,
		historyLabel,
	)
	window.SetContent(content)
	window.Canvas().SetOnTypedKey(timerWindow.handleKey)
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	timerWindow.Refresh()
	return timerWindow
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
}

// Refresh re-renders from a fresh engine snapshot. Must run on the fyne
// goroutine.
func (timerWindow *Window) Refresh() {
	info := timerWindow.engine.Snapshot()
	config := timerWindow.engine.Config()

	timerWindow.timeText.Text = info.FormatTime()
	timerWindow.timeText.Color = stateColor(info.CurrentState)
	timerWindow.stateText.Text = info.CurrentState.DisplayName()
	timerWindow.sessionLabel.SetText(info.SessionLabel(config.SessionsUntilLong))

	switch {
	case info.CurrentState.IsRunning():
		timerWindow.toggleButton.SetText("Pause")
	case info.CurrentState.IsPaused():
		timerWindow.toggleButton.SetText("Resume")
	default:
		timerWindow.toggleButton.SetText("Start")
	}
	if info.IsFocusMode {
		timerWindow.modeButton.SetText("Rest")
	} else {
		timerWindow.modeButton.SetText("Focus")
	}

	if displayed := info.DisplayedTimer(); displayed != nil {
		timerWindow.historyLabel.SetText(historyLine(info, displayed))
	} else {
		timerWindow.historyLabel.SetText("")
	}

	timerWindow.timeText.Refresh()
	timerWindow.stateText.Refresh()
}

func (timerWindow *Window) handleKey(event *fyne.KeyEvent) {
	// The entry consumes keys while focused; shortcuts apply otherwise.
	if timerWindow.window.Canvas().Focused() != nil {
		return
	}

	timerEngine := timerWindow.engine
	switch event.Name {
	case fyne.KeySpace:
		timerEngine.Dispatch(engine.CommandToggle)
	case fyne.KeyS:
		timerEngine.Dispatch(engine.CommandSkip)
	case fyne.KeyEscape:
		snapshot := timerEngine.Snapshot()
		if snapshot.IsViewingHistory() {
			timerEngine.Dispatch(engine.CommandExitHistory)
		} else {
			timerEngine.Dispatch(engine.CommandReset)
		}
	case fyne.KeyN:
		timerEngine.NewTimer(clampLabel(timerWindow.labelEntry.Text))
		timerWindow.labelEntry.SetText("")
	case fyne.KeyF:
		timerEngine.Dispatch(engine.CommandSwitchToFocus)
	case fyne.KeyB:
		timerEngine.Dispatch(engine.CommandSwitchToRest)
	case fyne.KeyLeft:
		timerEngine.Dispatch(engine.CommandHistoryPrev)
	case fyne.KeyRight:
		timerEngine.Dispatch(engine.CommandHistoryNext)
	case fyne.KeyE:
		timerWindow.window.Canvas().Focus(timerWindow.labelEntry)
	}
}

func historyLine(info model.SessionInfo, displayed *model.CompletedTimer) string {
	label := displayed.Label
	if label == "" {
		label = "(unlabeled)"
	}
	index := 0
	if info.HistoryIndex != nil {
		index = *info.HistoryIndex
	}
	return fmt.Sprintf("History %d/%d: %s - %s", index+1, len(info.History), displayed.SessionType, label)
}

func clampLabel(label string) string {
	runes := []rune(label)
	if len(runes) > labelMaxLen {
		return string(runes[:labelMaxLen])
	}
	return label
}

func stateColor(state model.TimerState) color.Color {
	switch state {
	case model.StateWorking:
		return color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	case model.StateShortBreak:
		return color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	case model.StateLongBreak:
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	case model.StateWorkPaused, model.StateBreakPaused, model.StateLongBreakPaused:
		return color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	}
	return color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
}
