package timekeeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/plan"
)

var (
	// ErrAlreadyRunning is returned by Start while a session is counting down.
	ErrAlreadyRunning = errors.New("timer already running")
	// ErrNotRunning is returned by Pause when no session is counting down.
	ErrNotRunning = errors.New("timer not running")
	// ErrClosed is returned by Start and Pause after Close.
	ErrClosed = errors.New("timer closed")
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

// TimeKeeper is the work/break session state machine.
//
// Remaining time is always derived from an absolute target end time, so a
// delayed wake-up never accumulates drift. Wake-ups are self-rescheduled: the
// next one is armed only after the current tick finished, and a suspended
// host produces a single late tick rather than a burst of catch-up ticks.
type TimeKeeper struct {
	mu          sync.Mutex
	options     Config
	persistence Persistence
	clock       Clock
	notifier    Notifier
	player      Player
	wakeLock    WakeLock
	logger      *slog.Logger

	settings  model.Settings
	status    Status
	index     int
	remaining int
	target    time.Time

	timer      Timer
	generation uint64
	wakeHandle WakeLockHandle

	events []chan Event
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a TimeKeeper, loading settings and today's progress.
func New(deps Deps, options Config) *TimeKeeper {
	deps = deps.withDefaults()
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	keeper := &TimeKeeper{
		options:     options,
		persistence: deps.Persistence,
		clock:       deps.Clock,
		notifier:    deps.Notifier,
		player:      deps.Player,
		wakeLock:    deps.WakeLock,
		logger:      deps.Logger,
		status:      StatusIdle,
		ctx:         ctx,
		cancel:      cancel,
	}

	settings, err := keeper.persistence.LoadSettings()
	if err != nil {
		keeper.logger.Warn("load settings failed, using defaults", "error", err)
		settings = model.DefaultSettings()
	}
	keeper.settings = settings.Clamp()

	progress, err := keeper.persistence.LoadProgress()
	if err != nil {
		keeper.logger.Warn("load progress failed, starting a new cycle", "error", err)
		progress = model.Progress{}
	}
	keeper.index = plan.ClampIndex(progress.IndexFor(keeper.clock.Now()), keeper.settings)
	keeper.remaining = keeper.sessionSecondsLocked()
	return keeper
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Snapshot returns the current state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Start begins or resumes the countdown of the current session.
func (keeper *TimeKeeper) Start() error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return ErrClosed
	}
	if keeper.status == StatusRunning {
		return ErrAlreadyRunning
	}

	now := keeper.clock.Now()
	keeper.target = now.Add(time.Duration(keeper.remaining) * time.Second)
	keeper.status = StatusRunning
	keeper.acquireWakeLockLocked()
	keeper.armLocked()

	keeper.emitLocked(Event{Type: EventStateChange, At: now})
	return nil
}

// Pause freezes the countdown at its last computed value.
func (keeper *TimeKeeper) Pause() error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return ErrClosed
	}
	if keeper.status != StatusRunning {
		return ErrNotRunning
	}

	keeper.disarmLocked()
	keeper.releaseWakeLockLocked()
	keeper.status = StatusPaused

	keeper.emitLocked(Event{Type: EventStateChange, At: keeper.clock.Now()})
	return nil
}

// Reset stops the timer and returns to the first work session of the cycle.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}

	now := keeper.clock.Now()
	keeper.restartCycleLocked()
	keeper.saveProgressLocked(1, now)

	keeper.emitLocked(Event{Type: EventStateChange, At: now})
}

// Skip ends the current session immediately, exactly as if its countdown had
// reached zero.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	effects := keeper.crossBoundaryLocked(keeper.clock.Now())
	keeper.mu.Unlock()

	runEffects(effects)
}

// UpdateSettings merges patch into the current settings and persists them.
// A running countdown keeps its remaining time; otherwise the remaining time
// follows the new length of the current session.
func (keeper *TimeKeeper) UpdateSettings(patch model.SettingsPatch) model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return keeper.settings
	}

	keeper.settings = keeper.settings.Apply(patch)
	if err := keeper.persistence.SaveSettings(keeper.settings); err != nil {
		keeper.logger.Warn("save settings failed", "error", err)
	}
	if keeper.status != StatusRunning {
		keeper.remaining = keeper.sessionSecondsLocked()
	}

	keeper.emitLocked(Event{Type: EventSettingsChange, At: keeper.clock.Now()})
	return keeper.settings
}

// Tick recomputes the remaining time and crosses the session boundary once
// it reaches zero. It is normally driven by the internal scheduler.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	if keeper.status != StatusRunning {
		keeper.mu.Unlock()
		return
	}
	effects := keeper.tickLocked(keeper.clock.Now())
	keeper.mu.Unlock()

	runEffects(effects)
}

// Resync refreshes the remaining time from the target end time after the
// host was suspended or hidden. It never crosses a session boundary; an
// expired session shows zero until the next tick.
func (keeper *TimeKeeper) Resync() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.status != StatusRunning {
		return
	}

	now := keeper.clock.Now()
	keeper.remaining = remainingSeconds(keeper.target, now)
	keeper.emitLocked(Event{Type: EventResync, At: now})
}

// Close stops scheduling, releases the wake-lock and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.disarmLocked()
	keeper.releaseWakeLockLocked()
	keeper.status = StatusIdle
	keeper.cancel()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tickLocked(now time.Time) []func() {
	keeper.remaining = remainingSeconds(keeper.target, now)
	if keeper.remaining > 0 {
		keeper.emitLocked(Event{Type: EventProgress, At: now})
		return nil
	}
	return keeper.crossBoundaryLocked(now)
}

// crossBoundaryLocked moves to the next session. State, including the target
// end time, is updated before any side effect runs, so a repeated tick at the
// same instant sees a fresh positive countdown and does nothing.
func (keeper *TimeKeeper) crossBoundaryLocked(now time.Time) []func() {
	if plan.IsLastSessionOfCycle(keeper.index, keeper.settings) {
		return keeper.completeCycleLocked(now)
	}

	next := keeper.index + 1
	kind := plan.SessionKind(next, keeper.settings)
	if keeper.status == StatusRunning {
		keeper.target = now.Add(time.Duration(kind.DurationSeconds) * time.Second)
	}
	if kind.IsWork {
		keeper.saveProgressLocked(next, now)
	}
	keeper.index = next
	keeper.remaining = kind.DurationSeconds

	title, message := sessionMessage(next, keeper.settings)
	keeper.logger.Info("session boundary", "index", next, "work", kind.IsWork)
	keeper.emitLocked(Event{Type: EventSessionChange, Title: title, Message: message, At: now})
	return keeper.announceLocked(title, message)
}

func (keeper *TimeKeeper) completeCycleLocked(now time.Time) []func() {
	settings := keeper.settings
	keeper.saveProgressLocked(plan.TotalSessions(settings), now)
	keeper.restartCycleLocked()

	title, message := completionMessage(settings)
	keeper.logger.Info("cycle complete", "intervals", settings.Intervals)
	keeper.emitLocked(Event{Type: EventCycleComplete, Title: title, Message: message, At: now})
	return keeper.announceLocked(title, message)
}

func (keeper *TimeKeeper) restartCycleLocked() {
	keeper.disarmLocked()
	keeper.releaseWakeLockLocked()
	keeper.status = StatusIdle
	keeper.index = 1
	keeper.target = time.Time{}
	keeper.remaining = keeper.sessionSecondsLocked()
}

// announceLocked captures the notification side effects for a boundary. They
// run after the lock is released; failures are logged and never affect state.
func (keeper *TimeKeeper) announceLocked(title, message string) []func() {
	notifier := keeper.notifier
	player := keeper.player
	logger := keeper.logger
	ctx := keeper.ctx
	settings := keeper.settings

	return []func(){
		func() {
			if err := notifier.Notify(title, message); err != nil {
				logger.Warn("notification failed", "title", title, "error", err)
			}
		},
		func() {
			go func() {
				err := player.Play(ctx, settings.NotificationSound, settings.NotificationVolume, settings.BeepCount)
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("sound playback failed", "sound", settings.NotificationSound, "error", err)
				}
			}()
		},
	}
}

func (keeper *TimeKeeper) armLocked() {
	keeper.disarmLocked()
	generation := keeper.generation
	keeper.timer = keeper.clock.AfterFunc(keeper.options.TickInterval, func() {
		keeper.wake(generation)
	})
}

func (keeper *TimeKeeper) disarmLocked() {
	keeper.generation++
	if keeper.timer != nil {
		keeper.timer.Stop()
		keeper.timer = nil
	}
}

func (keeper *TimeKeeper) wake(generation uint64) {
	keeper.mu.Lock()
	if generation != keeper.generation || keeper.status != StatusRunning {
		keeper.mu.Unlock()
		return
	}
	keeper.timer = nil
	effects := keeper.tickLocked(keeper.clock.Now())
	if keeper.status == StatusRunning {
		keeper.armLocked()
	}
	keeper.mu.Unlock()

	runEffects(effects)
}

func (keeper *TimeKeeper) acquireWakeLockLocked() {
	if keeper.wakeHandle != nil {
		return
	}
	handle, err := keeper.wakeLock.Acquire()
	if err != nil {
		keeper.logger.Info("wake lock unavailable", "error", err)
		return
	}
	keeper.wakeHandle = handle
}

func (keeper *TimeKeeper) releaseWakeLockLocked() {
	if keeper.wakeHandle == nil {
		return
	}
	handle := keeper.wakeHandle
	keeper.wakeHandle = nil
	if err := handle.Release(); err != nil {
		keeper.logger.Info("wake lock release failed", "error", err)
	}
}

func (keeper *TimeKeeper) saveProgressLocked(index int, now time.Time) {
	if err := keeper.persistence.SaveProgress(model.NewProgress(index, now)); err != nil {
		keeper.logger.Warn("save progress failed", "index", index, "error", err)
	}
}

func (keeper *TimeKeeper) sessionSecondsLocked() int {
	return plan.SessionKind(keeper.index, keeper.settings).DurationSeconds
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		RemainingSeconds:    keeper.remaining,
		Status:              keeper.status,
		CurrentSessionIndex: keeper.index,
		Settings:            keeper.settings,
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	event.Snapshot = keeper.snapshotLocked()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func runEffects(effects []func()) {
	for _, effect := range effects {
		effect()
	}
}
