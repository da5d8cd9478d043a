package model

// SettingsVersion tags persisted settings. Stored settings with any other tag
// are discarded in favour of DefaultSettings.
const SettingsVersion = "2"

// Sound identifies a notification sound.
type Sound string

const (
	SoundBell  Sound = "bell"
	SoundChime Sound = "chime"
	SoundBeep  Sound = "beep"
)

// Valid reports whether the sound is one of the known sounds.
func (sound Sound) Valid() bool {
	switch sound {
	case SoundBell, SoundChime, SoundBeep:
		return true
	}
	return false
}

// Limits for user editable values.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 60
	MinBreakMinutes = 1
	MaxBreakMinutes = 30
	MinIntervals    = 1
	MaxIntervals    = 10
	MinVolume       = 0
	MaxVolume       = 100
	MinBeepCount    = 1
	MaxBeepCount    = 10
)

// Settings contains the user preferences that drive the timer.
type Settings struct {
	WorkDuration       int   `json:"workDuration"`
	BreakDuration      int   `json:"breakDuration"`
	Intervals          int   `json:"intervals"`
	NotificationVolume int   `json:"notificationVolume"`
	NotificationSound  Sound `json:"notificationSound"`
	BeepCount          int   `json:"beepCount"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:       25,
		BreakDuration:      5,
		Intervals:          4,
		NotificationVolume: 50,
		NotificationSound:  SoundBell,
		BeepCount:          3,
	}
}

// Clamp forces every field into its allowed range.
func (settings Settings) Clamp() Settings {
	settings.WorkDuration = clamp(settings.WorkDuration, MinWorkMinutes, MaxWorkMinutes)
	settings.BreakDuration = clamp(settings.BreakDuration, MinBreakMinutes, MaxBreakMinutes)
	settings.Intervals = clamp(settings.Intervals, MinIntervals, MaxIntervals)
	settings.NotificationVolume = clamp(settings.NotificationVolume, MinVolume, MaxVolume)
	settings.BeepCount = clamp(settings.BeepCount, MinBeepCount, MaxBeepCount)
	if !settings.NotificationSound.Valid() {
		settings.NotificationSound = SoundBell
	}
	return settings
}

// SettingsPatch is a partial update. Nil fields are left unchanged.
type SettingsPatch struct {
	WorkDuration       *int
	BreakDuration      *int
	Intervals          *int
	NotificationVolume *int
	NotificationSound  *Sound
	BeepCount          *int
}

// Apply merges the patch into settings and clamps the result.
func (settings Settings) Apply(patch SettingsPatch) Settings {
	if patch.WorkDuration != nil {
		settings.WorkDuration = *patch.WorkDuration
	}
	if patch.BreakDuration != nil {
		settings.BreakDuration = *patch.BreakDuration
	}
	if patch.Intervals != nil {
		settings.Intervals = *patch.Intervals
	}
	if patch.NotificationVolume != nil {
		settings.NotificationVolume = *patch.NotificationVolume
	}
	if patch.NotificationSound != nil {
		settings.NotificationSound = *patch.NotificationSound
	}
	if patch.BeepCount != nil {
		settings.BeepCount = *patch.BeepCount
	}
	return settings.Clamp()
}

// PatchFrom builds a patch that sets every field to the values in settings.
func PatchFrom(settings Settings) SettingsPatch {
	return SettingsPatch{
		WorkDuration:       &settings.WorkDuration,
		BreakDuration:      &settings.BreakDuration,
		Intervals:          &settings.Intervals,
		NotificationVolume: &settings.NotificationVolume,
		NotificationSound:  &settings.NotificationSound,
		BeepCount:          &settings.BeepCount,
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
