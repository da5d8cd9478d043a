package timekeeper

import (
	"context"
	"log/slog"

	"focustimer/internal/core/model"
)

// Persistence stores settings and today's progress.
type Persistence interface {
	LoadSettings() (model.Settings, error)
	SaveSettings(settings model.Settings) error
	// LoadProgress returns the zero Progress when nothing is stored.
	LoadProgress() (model.Progress, error)
	SaveProgress(progress model.Progress) error
}

// Notifier delivers a user visible notification.
type Notifier interface {
	Notify(title, body string) error
}

// Player plays a notification sound count times at volume percent.
type Player interface {
	Play(ctx context.Context, sound model.Sound, volume, count int) error
}

// WakeLock keeps the screen awake while a session runs.
type WakeLock interface {
	Acquire() (WakeLockHandle, error)
}

// WakeLockHandle releases an acquired wake-lock. Release must tolerate
// repeated calls.
type WakeLockHandle interface {
	Release() error
}

// Deps contains the collaborators of a TimeKeeper. Nil fields are replaced
// with no-op implementations.
type Deps struct {
	Persistence Persistence
	Clock       Clock
	Notifier    Notifier
	Player      Player
	WakeLock    WakeLock
	Logger      *slog.Logger
}

func (deps Deps) withDefaults() Deps {
	if deps.Persistence == nil {
		deps.Persistence = nopPersistence{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Player == nil {
		deps.Player = nopPlayer{}
	}
	if deps.WakeLock == nil {
		deps.WakeLock = nopWakeLock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return deps
}

type nopPersistence struct{}

func (nopPersistence) LoadSettings() (model.Settings, error) { return model.DefaultSettings(), nil }
func (nopPersistence) SaveSettings(model.Settings) error     { return nil }
func (nopPersistence) LoadProgress() (model.Progress, error) { return model.Progress{}, nil }
func (nopPersistence) SaveProgress(model.Progress) error     { return nil }

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) error { return nil }

type nopPlayer struct{}

func (nopPlayer) Play(context.Context, model.Sound, int, int) error { return nil }

type nopWakeLock struct{}

func (nopWakeLock) Acquire() (WakeLockHandle, error) { return nil, nil }
