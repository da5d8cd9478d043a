package timekeeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"focustimer/internal/core/model"
)

var errBoom = errors.New("boom")

type fakeTimer struct {
	clock   *fakeClock
	when    time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	wasPending := !timer.stopped && !timer.fired
	timer.stopped = true
	return wasPending
}

// fakeClock is a manual clock. Advance moves time forward in one jump and
// then fires every timer that came due, the way a host resuming from
// suspension delivers a single late callback.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &fakeTimer{clock: clock, when: clock.now.Add(d), fn: f}
	clock.timers = append(clock.timers, timer)
	return timer
}

// Set moves the clock without firing timers.
func (clock *fakeClock) Set(now time.Time) {
	clock.mu.Lock()
	clock.now = now
	clock.mu.Unlock()
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	clock.mu.Unlock()

	for {
		timer := clock.nextDue()
		if timer == nil {
			return
		}
		timer.fn()
	}
}

// Step advances one second at a time, firing timers along the way.
func (clock *fakeClock) Step(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += time.Second {
		clock.Advance(time.Second)
	}
}

func (clock *fakeClock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (clock *fakeClock) nextDue() *fakeTimer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	var due []*fakeTimer
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired && !timer.when.After(clock.now) {
			due = append(due, timer)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
	due[0].fired = true
	return due[0]
}

type memoryPersistence struct {
	mu             sync.Mutex
	settings       model.Settings
	progress       model.Progress
	progressWrites []model.Progress
	settingsWrites []model.Settings
	failWrites     bool
	failLoads      bool
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{settings: model.DefaultSettings()}
}

func (store *memoryPersistence) LoadSettings() (model.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failLoads {
		return model.Settings{}, errBoom
	}
	return store.settings, nil
}

func (store *memoryPersistence) SaveSettings(settings model.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errBoom
	}
	store.settings = settings
	store.settingsWrites = append(store.settingsWrites, settings)
	return nil
}

func (store *memoryPersistence) LoadProgress() (model.Progress, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failLoads {
		return model.Progress{}, errBoom
	}
	return store.progress, nil
}

func (store *memoryPersistence) SaveProgress(progress model.Progress) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errBoom
	}
	store.progress = progress
	store.progressWrites = append(store.progressWrites, progress)
	return nil
}

func (store *memoryPersistence) ProgressWrites() []model.Progress {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Progress(nil), store.progressWrites...)
}

type notification struct {
	Title string
	Body  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
	err  error
}

func (notifier *recordingNotifier) Notify(title, body string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.sent = append(notifier.sent, notification{Title: title, Body: body})
	return notifier.err
}

func (notifier *recordingNotifier) Sent() []notification {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]notification(nil), notifier.sent...)
}

func (notifier *recordingNotifier) Titles() []string {
	var titles []string
	for _, sent := range notifier.Sent() {
		titles = append(titles, sent.Title)
	}
	return titles
}

type playback struct {
	Sound  model.Sound
	Volume int
	Count  int
}

type recordingPlayer struct {
	mu     sync.Mutex
	played []playback
	err    error
}

func (player *recordingPlayer) Play(_ context.Context, sound model.Sound, volume, count int) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.played = append(player.played, playback{Sound: sound, Volume: volume, Count: count})
	return player.err
}

func (player *recordingPlayer) Count() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return len(player.played)
}

type fakeWakeLock struct {
	mu       sync.Mutex
	acquired int
	released int
	err      error
}

type fakeWakeHandle struct {
	lock *fakeWakeLock
	done bool
}

func (lock *fakeWakeLock) Acquire() (WakeLockHandle, error) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.err != nil {
		return nil, lock.err
	}
	lock.acquired++
	return &fakeWakeHandle{lock: lock}, nil
}

func (handle *fakeWakeHandle) Release() error {
	handle.lock.mu.Lock()
	defer handle.lock.mu.Unlock()
	if handle.done {
		return nil
	}
	handle.done = true
	handle.lock.released++
	return nil
}

func (lock *fakeWakeLock) Held() int {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.acquired - lock.released
}

type harness struct {
	clock       *fakeClock
	persistence *memoryPersistence
	notifier    *recordingNotifier
	player      *recordingPlayer
	wakeLock    *fakeWakeLock
}

func newHarness() *harness {
	return &harness{
		clock:       newFakeClock(),
		persistence: newMemoryPersistence(),
		notifier:    &recordingNotifier{},
		player:      &recordingPlayer{},
		wakeLock:    &fakeWakeLock{},
	}
}

func (h *harness) keeper() *TimeKeeper {
	return New(Deps{
		Persistence: h.persistence,
		Clock:       h.clock,
		Notifier:    h.notifier,
		Player:      h.player,
		WakeLock:    h.wakeLock,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, Config{TickInterval: time.Second})
}
