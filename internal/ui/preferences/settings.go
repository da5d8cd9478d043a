package preferences

import (
	"strconv"
	"strings"

	"focustimer/internal/core/model"
)

// Form holds the raw values of the preferences form.
type Form struct {
	WorkMinutes  string
	BreakMinutes string
	Intervals    string
	Volume       float64
	Sound        string
	BeepCount    string
}

// FormFrom renders settings into form values.
func FormFrom(settings model.Settings) Form {
	return Form{
		WorkMinutes:  strconv.Itoa(settings.WorkDuration),
		BreakMinutes: strconv.Itoa(settings.BreakDuration),
		Intervals:    strconv.Itoa(settings.Intervals),
		Volume:       float64(settings.NotificationVolume),
		Sound:        string(settings.NotificationSound),
		BeepCount:    strconv.Itoa(settings.BeepCount),
	}
}

// Patch converts the form into a settings patch. Fields that do not parse
// are left out so the current value is kept; range limits are applied by
// the TimeKeeper.
func (form Form) Patch() model.SettingsPatch {
	var patch model.SettingsPatch
	if value, ok := parseInt(form.WorkMinutes); ok {
		patch.WorkDuration = &value
	}
	if value, ok := parseInt(form.BreakMinutes); ok {
		patch.BreakDuration = &value
	}
	if value, ok := parseInt(form.Intervals); ok {
		patch.Intervals = &value
	}
	volume := int(form.Volume + 0.5)
	patch.NotificationVolume = &volume
	if sound := model.Sound(form.Sound); sound.Valid() {
		patch.NotificationSound = &sound
	}
	if value, ok := parseInt(form.BeepCount); ok {
		patch.BeepCount = &value
	}
	return patch
}

// SoundOptions lists the selectable notification sounds.
func SoundOptions() []string {
	return []string{string(model.SoundBell), string(model.SoundChime), string(model.SoundBeep)}
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
