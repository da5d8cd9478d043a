package timekeeper

import (
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/plan"
)

// Status represents the TimeKeeper run state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventSessionChange  EventType = "session_change"
	EventCycleComplete  EventType = "cycle_complete"
	EventSettingsChange EventType = "settings_change"
	EventResync         EventType = "resync"
)

// Snapshot is an immutable copy of the timer state for rendering.
type Snapshot struct {
	RemainingSeconds    int
	Status              Status
	CurrentSessionIndex int
	Settings            model.Settings
}

// IsWorkSession reports whether the current session is a work session.
func (snapshot Snapshot) IsWorkSession() bool {
	return plan.IsWork(snapshot.CurrentSessionIndex)
}

// TotalSessions returns the number of sessions in the current cycle.
func (snapshot Snapshot) TotalSessions() int {
	return plan.TotalSessions(snapshot.Settings)
}

// WorkSessionNumber returns the work session the current index belongs to.
func (snapshot Snapshot) WorkSessionNumber() int {
	return plan.WorkSessionNumber(snapshot.CurrentSessionIndex)
}

// SessionSeconds returns the configured length of the current session.
func (snapshot Snapshot) SessionSeconds() int {
	return plan.SessionKind(snapshot.CurrentSessionIndex, snapshot.Settings).DurationSeconds
}

// Remaining returns the remaining time as a duration.
func (snapshot Snapshot) Remaining() time.Duration {
	return time.Duration(snapshot.RemainingSeconds) * time.Second
}

// Progress returns the elapsed fraction of the current session in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	total := snapshot.SessionSeconds()
	if total <= 0 {
		return 1
	}
	progress := float64(total-snapshot.RemainingSeconds) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Title    string
	Message  string
	At       time.Time
}
