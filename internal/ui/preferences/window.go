// Package preferences edits the timer configuration.
package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window fyne.Window
	config model.Config
	onSave func(model.Config)

	workDur       *widget.Entry
	shortDur      *widget.Entry
	longDur       *widget.Entry
	sessions      *widget.Entry
	notifications *widget.Check
	autoBreaks    *widget.Check
	autoWork      *widget.Check
}

// New creates a preferences window. onSave receives the validated config.
func New(app fyne.App, config model.Config, onSave func(model.Config)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	workDur := widget.NewEntry()
	shortDur := widget.NewEntry()
	longDur := widget.NewEntry()
	sessions := widget.NewEntry()

	notifications := widget.NewCheck("Desktop notifications", nil)
	autoBreaks := widget.NewCheck("Auto-start breaks after work", nil)
	autoWork := widget.NewCheck("Auto-start work after breaks", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), workDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), shortDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Sessions until long break"), sessions),
		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		notifications,
		autoBreaks,
		autoWork,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 340))

	prefs := &Window{
		window:        window,
		config:        config,
		onSave:        onSave,
		workDur:       workDur,
		shortDur:      shortDur,
		longDur:       longDur,
		sessions:      sessions,
		notifications: notifications,
		autoBreaks:    autoBreaks,
		autoWork:      autoWork,
	}
	prefs.UpdateConfig(config)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateConfig(prefs.config)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces the displayed values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	prefs.workDur.SetText(fmt.Sprintf("%d", config.WorkDurationMin))
	prefs.shortDur.SetText(fmt.Sprintf("%d", config.ShortBreakDurationMin))
	prefs.longDur.SetText(fmt.Sprintf("%d", config.LongBreakDurationMin))
	prefs.sessions.SetText(fmt.Sprintf("%d", config.SessionsUntilLong))
	prefs.notifications.SetChecked(config.EnableNotifications)
	prefs.autoBreaks.SetChecked(config.AutoStartBreaks)
	prefs.autoWork.SetChecked(config.AutoStartWork)
}

func (prefs *Window) handleSave() {
	config := prefs.config

	if minutes, ok := parsePositiveUint(prefs.workDur.Text); ok {
		config.WorkDurationMin = minutes
	}
	if minutes, ok := parsePositiveUint(prefs.shortDur.Text); ok {
		config.ShortBreakDurationMin = minutes
	}
	if minutes, ok := parsePositiveUint(prefs.longDur.Text); ok {
		config.LongBreakDurationMin = minutes
	}
	if count, ok := parsePositiveUint(prefs.sessions.Text); ok {
		config.SessionsUntilLong = count
	}

	config.EnableNotifications = prefs.notifications.Checked
	config.AutoStartBreaks = prefs.autoBreaks.Checked
	config.AutoStartWork = prefs.autoWork.Checked

	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}

func parsePositiveUint(value string) (uint32, bool) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint32(parsed), true
}
