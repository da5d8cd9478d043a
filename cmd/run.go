package main

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	tea "github.com/charmbracelet/bubbletea"

	"focustimer/internal/config"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timekeeper"
	"focustimer/internal/platform"
	"focustimer/internal/ui/preferences"
	"focustimer/internal/ui/status"
	"focustimer/internal/ui/tray"
	"focustimer/internal/ui/tui"
	"focustimer/internal/ui/window"
	"focustimer/resources"
)

const eventBuffer = 16

func run(ctx context.Context, cfg config.Config, headless bool, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	guard, err := platform.AcquireInstance(config.AppID)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	if headless {
		return runHeadless(ctx, cfg, logger)
	}
	return runDesktop(ctx, cfg, logger)
}

// watchWake resyncs the keeper after the machine resumes from suspend.
func watchWake(ctx context.Context, keeper *timekeeper.TimeKeeper, logger *slog.Logger) {
	go func() {
		err := platform.WatchWake(ctx, logger, keeper.Resync)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("resume watcher stopped", "error", err)
		}
	}()
}

func runHeadless(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	svc, err := newServices(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer closeServices(svc, logger)

	keeper := timekeeper.New(svc.deps, timekeeper.Config{TickInterval: cfg.TickInterval})
	defer keeper.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchWake(ctx, keeper, logger)

	return tui.Run(keeper, keeper.Subscribe(eventBuffer), tea.WithAltScreen())
}

func runDesktop(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	fyneApp := app.NewWithID(config.AppID)
	fyneApp.SetIcon(resources.ActiveIcon())

	svc, err := newServices(cfg, fyneApp, logger)
	if err != nil {
		return err
	}
	defer closeServices(svc, logger)

	keeper := timekeeper.New(svc.deps, timekeeper.Config{TickInterval: cfg.TickInterval})
	defer keeper.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchWake(ctx, keeper, logger)
	fyneApp.Lifecycle().SetOnEnteredForeground(keeper.Resync)

	prefsWindow := preferences.New(fyneApp, keeper.Snapshot().Settings, saveSettings(keeper))

	timerWindow := window.New(fyneApp, keeper, prefsWindow.Show, logger)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.ActiveIcon(),
			Paused: resources.PausedIcon(),
		}, tray.Callbacks{
			OnToggle: func() {
				if err := status.Toggle(keeper); err != nil {
					logger.Warn("toggle timer", "error", err)
				}
			},
			OnSkip:        keeper.Skip,
			OnReset:       keeper.Reset,
			OnShow:        timerWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(keeper.Snapshot())
	} else {
		logger.Info("system tray unsupported, closing the window quits")
		timerWindow.Window().SetCloseIntercept(fyneApp.Quit)
	}

	views := []snapshotView{timerWindow}
	if trayManager != nil {
		views = append(views, trayManager)
	}
	events := keeper.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			fyne.Do(func() {
				renderEvent(event, views, prefsWindow)
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

type snapshotView interface {
	Update(snapshot timekeeper.Snapshot)
}

type settingsView interface {
	UpdateSettings(settings model.Settings)
}

// saveSettings applies an edited form. The form itself is refreshed by the
// resulting settings event.
func saveSettings(keeper interface {
	UpdateSettings(model.SettingsPatch) model.Settings
}) func(model.SettingsPatch) {
	return func(patch model.SettingsPatch) {
		keeper.UpdateSettings(patch)
	}
}

// renderEvent pushes an event into the desktop views. It must run on the
// fyne UI goroutine.
func renderEvent(event timekeeper.Event, views []snapshotView, prefs settingsView) {
	for _, view := range views {
		view.Update(event.Snapshot)
	}
	if event.Type == timekeeper.EventSettingsChange {
		prefs.UpdateSettings(event.Snapshot.Settings)
	}
}

func closeServices(svc *services, logger *slog.Logger) {
	if err := svc.Close(); err != nil {
		logger.Warn("close services", "error", err)
	}
}
