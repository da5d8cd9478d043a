package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
)

func TestFormRoundTripsSettings(t *testing.T) {
	settings := model.Settings{
		WorkDuration:       30,
		BreakDuration:      10,
		Intervals:          3,
		NotificationVolume: 70,
		NotificationSound:  model.SoundChime,
		BeepCount:          2,
	}

	applied := model.DefaultSettings().Apply(FormFrom(settings).Patch())
	assert.Equal(t, settings, applied)
}

func TestPatchSkipsUnparsableFields(t *testing.T) {
	form := FormFrom(model.DefaultSettings())
	form.WorkMinutes = "abc"
	form.Sound = "gong"
	form.BreakMinutes = " 7 "

	patch := form.Patch()
	assert.Nil(t, patch.WorkDuration)
	assert.Nil(t, patch.NotificationSound)
	require.NotNil(t, patch.BreakDuration)
	assert.Equal(t, 7, *patch.BreakDuration)
}

func TestWindowSavesEditedValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *model.SettingsPatch
	prefs := New(app, model.DefaultSettings(), func(patch model.SettingsPatch) {
		saved = &patch
	})

	assert.Equal(t, "25", prefs.Form().WorkMinutes)
	prefs.workEntry.SetText("45")
	prefs.sound.SetSelected(string(model.SoundBeep))
	prefs.handleSave()

	require.NotNil(t, saved)
	require.NotNil(t, saved.WorkDuration)
	assert.Equal(t, 45, *saved.WorkDuration)
	require.NotNil(t, saved.NotificationSound)
	assert.Equal(t, model.SoundBeep, *saved.NotificationSound)
}
