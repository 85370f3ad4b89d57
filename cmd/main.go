package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/engine"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
)

const appName = "pomodoro"

func main() {
	logging.Initialize(false)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logging.Logger.Error("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, err := storage.LoadConfig(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewStateStore(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "state store: %v\n", err)
		os.Exit(1)
	}

	info := store.Load()
	primeTracks(info, config)

	fyneApp := app.NewWithID("io.pomodoro.timer")

	timerEngine := engine.New(info, config, store, notify.NewFyne(fyneApp), engine.Options{})

	timerWindow := ui.New(fyneApp, timerEngine)

	prefsWindow := preferences.New(fyneApp, config, func(updated model.Config) {
		if err := updated.Validate(); err != nil {
			logging.Logger.Warn("rejected preferences", "error", err)
			return
		}
		if err := storage.SaveConfig(appName, updated); err != nil {
			logging.Logger.Error("save config", "error", err)
		}
		timerEngine.UpdateConfig(updated)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				timerWindow.Show()
			},
			OnToggle: func() {
				timerEngine.Dispatch(engine.CommandToggle)
			},
			OnSkip: func() {
				timerEngine.Dispatch(engine.CommandSkip)
			},
			OnReset: func() {
				timerEngine.Dispatch(engine.CommandReset)
			},
			OnNewTimer: func() {
				timerEngine.NewTimer("")
			},
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: func() {
				timerEngine.Stop()
				fyneApp.Quit()
			},
		})
	} else {
		logging.Logger.Warn("system tray unsupported on this platform")
	}

	configWatcher, err := storage.WatchConfig(appName, func(updated model.Config) {
		timerEngine.UpdateConfig(updated)
		fyne.Do(func() {
			prefsWindow.UpdateConfig(updated)
		})
	})
	if err != nil {
		logging.Logger.Warn("config hot-reload unavailable", "error", err)
	} else {
		defer configWatcher.Stop()
	}

	events := timerEngine.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, timerEngine, timerWindow, trayManager)
		}
	}()

	timerEngine.Start()
	defer timerEngine.Stop()

	timerWindow.Show()
	fyneApp.Run()
}

// primeTracks restores counters that persisted as zero and re-derives the
// active track from the persisted state, matching first-run behavior.
func primeTracks(info *model.SessionInfo, config model.Config) {
	if info.TimeRemainingSecs == 0 {
		info.TimeRemainingSecs = config.WorkDurationSecs()
	}
	if info.RestRemainingSecs == 0 {
		info.RestRemainingSecs = config.ShortBreakDurationSecs()
	}
	info.IsFocusMode = info.CurrentState.IsWork() || info.CurrentState == model.StateIdle
}

func handleEvent(event engine.Event, timerEngine *engine.Engine, timerWindow *ui.Window, trayManager *tray.Manager) {
	fyne.Do(func() {
		timerWindow.Refresh()
		if trayManager == nil {
			return
		}
		info := timerEngine.Snapshot()
		trayManager.SetStatus(fmt.Sprintf("%s %s", info.CurrentState.DisplayName(), info.FormatTime()))
		switch {
		case info.CurrentState.IsRunning():
			trayManager.SetToggleLabel("Pause")
		case info.CurrentState.IsPaused():
			trayManager.SetToggleLabel("Resume")
		default:
			trayManager.SetToggleLabel("Start")
		}
	})
	if event.Type == engine.EventCompleted {
		logging.Logger.Info("interval complete", "state", string(event.State))
	}
}
