// Package window implements the main timer window.
package window

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focustimer/internal/core/timekeeper"
	"focustimer/internal/ui/status"
)

var (
	workColor  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	breakColor = color.NRGBA{R: 96, G: 190, B: 140, A: 255}
)

// Window shows the countdown with start/pause, reset and skip controls.
type Window struct {
	window        fyne.Window
	controller    status.Controller
	logger        *slog.Logger
	sessionLabel  *canvas.Text
	timerLabel    *canvas.Text
	progress      *widget.ProgressBar
	completed     *widget.Label
	toggleButton  *widget.Button
	resetButton   *widget.Button
	skipButton    *widget.Button
	onPreferences func()
}

// New creates the timer window. Closing it only hides it; the app keeps
// running in the tray.
func New(app fyne.App, controller status.Controller, onPreferences func(), logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := app.NewWindow("FocusTimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	sessionLabel := canvas.NewText("", workColor)
	sessionLabel.Alignment = fyne.TextAlignCenter
	sessionLabel.TextStyle = fyne.TextStyle{Bold: true}
	sessionLabel.TextSize = 18

	timerLabel := canvas.NewText("--:--", workColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	timer := &Window{
		window:        window,
		controller:    controller,
		logger:        logger,
		sessionLabel:  sessionLabel,
		timerLabel:    timerLabel,
		progress:      widget.NewProgressBar(),
		completed:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		onPreferences: onPreferences,
	}
	timer.progress.TextFormatter = func() string { return "" }
	timer.toggleButton = widget.NewButton("Start", timer.handleToggle)
	timer.resetButton = widget.NewButton("Reset", controller.Reset)
	timer.skipButton = widget.NewButton("Skip", controller.Skip)
	settingsButton := widget.NewButton("Settings", func() {
		if timer.onPreferences != nil {
			timer.onPreferences()
		}
	})

	buttons := container.NewHBox(layout.NewSpacer(), timer.toggleButton, timer.resetButton, timer.skipButton, layout.NewSpacer())
	content := container.NewVBox(
		sessionLabel,
		timerLabel,
		timer.progress,
		timer.completed,
		buttons,
		container.NewHBox(layout.NewSpacer(), settingsButton),
	)
	window.SetContent(container.NewPadded(content))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(360, 280))

	timer.Update(controller.Snapshot())
	return timer
}

// Window returns the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// Update renders a snapshot. It must run on the fyne UI goroutine.
func (timer *Window) Update(snapshot timekeeper.Snapshot) {
	accent := breakColor
	if snapshot.IsWorkSession() {
		accent = workColor
	}

	timer.sessionLabel.Text = status.SessionLabel(snapshot)
	timer.sessionLabel.Color = accent
	timer.sessionLabel.Refresh()

	timer.timerLabel.Text = status.FormatRemaining(snapshot.Remaining())
	timer.timerLabel.Color = accent
	timer.timerLabel.Refresh()

	timer.progress.SetValue(snapshot.Progress())
	timer.completed.SetText(fmt.Sprintf("Completed this cycle: %d/%d", status.CompletedInCycle(snapshot), snapshot.Settings.Intervals))
	timer.toggleButton.SetText(status.ToggleLabel(snapshot))
}

func (timer *Window) handleToggle() {
	if err := status.Toggle(timer.controller); err != nil {
		timer.logger.Warn("toggle timer", "error", err)
	}
}
