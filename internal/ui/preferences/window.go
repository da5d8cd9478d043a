package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focustimer/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	onSave      func(model.SettingsPatch)
	workEntry   *widget.Entry
	breakEntry  *widget.Entry
	intervals   *widget.Entry
	volume      *widget.Slider
	volumeLabel *widget.Label
	sound       *widget.Select
	beepCount   *widget.Entry
}

// New creates a preferences window. onSave receives the edited values.
func New(app fyne.App, settings model.Settings, onSave func(model.SettingsPatch)) *Window {
	window := app.NewWindow("FocusTimer Settings")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		workEntry:   widget.NewEntry(),
		breakEntry:  widget.NewEntry(),
		intervals:   widget.NewEntry(),
		volume:      widget.NewSlider(model.MinVolume, model.MaxVolume),
		volumeLabel: widget.NewLabel(""),
		sound:       widget.NewSelect(SoundOptions(), nil),
		beepCount:   widget.NewEntry(),
	}
	prefs.volume.Step = 1
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeLabel.SetText(fmt.Sprintf("%d%%", int(value)))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work duration"), prefs.workEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break duration"), prefs.breakEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Work sessions per cycle"), prefs.intervals),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Sound"), prefs.sound),
		container.NewHBox(widget.NewLabel("Repeat"), prefs.beepCount, widget.NewLabel("times")),
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), prefs.volumeLabel, prefs.volume),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 380))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	form := FormFrom(settings)
	prefs.workEntry.SetText(form.WorkMinutes)
	prefs.breakEntry.SetText(form.BreakMinutes)
	prefs.intervals.SetText(form.Intervals)
	prefs.volume.SetValue(form.Volume)
	prefs.volumeLabel.SetText(fmt.Sprintf("%d%%", int(form.Volume)))
	prefs.sound.SetSelected(form.Sound)
	prefs.beepCount.SetText(form.BeepCount)
}

// Form returns the current form values.
func (prefs *Window) Form() Form {
	return Form{
		WorkMinutes:  prefs.workEntry.Text,
		BreakMinutes: prefs.breakEntry.Text,
		Intervals:    prefs.intervals.Text,
		Volume:       prefs.volume.Value,
		Sound:        prefs.sound.Selected,
		BeepCount:    prefs.beepCount.Text,
	}
}

func (prefs *Window) handleSave() {
	if prefs.onSave != nil {
		prefs.onSave(prefs.Form().Patch())
	}
	prefs.window.Hide()
}
