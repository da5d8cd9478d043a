// Package status formats timer snapshots for the presentation layers and
// holds the controls they share.
package status

import (
	"fmt"
	"time"

	"focustimer/internal/core/timekeeper"
)

// Controller is the subset of the TimeKeeper driven by user input.
type Controller interface {
	Start() error
	Pause() error
	Reset()
	Skip()
	Snapshot() timekeeper.Snapshot
}

// Toggle pauses a running timer and starts it otherwise.
func Toggle(controller Controller) error {
	if controller.Snapshot().Status == timekeeper.StatusRunning {
		return controller.Pause()
	}
	return controller.Start()
}

// FormatRemaining renders a duration as MM:SS.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// SessionLabel returns "Work 2/4" or "Break 2/4".
func SessionLabel(snapshot timekeeper.Snapshot) string {
	kind := "Break"
	if snapshot.IsWorkSession() {
		kind = "Work"
	}
	return fmt.Sprintf("%s %d/%d", kind, snapshot.WorkSessionNumber(), snapshot.Settings.Intervals)
}

// Line is the one-line summary shown in the tray, e.g. "Work 1/4 · 24:13".
func Line(snapshot timekeeper.Snapshot) string {
	line := fmt.Sprintf("%s · %s", SessionLabel(snapshot), FormatRemaining(snapshot.Remaining()))
	if snapshot.Status == timekeeper.StatusPaused {
		line += " (paused)"
	}
	return line
}

// CompletedInCycle counts the work sessions finished in the current cycle.
// It restarts at zero when a cycle completes; index 2*intervals is the final
// break, after every work session of the cycle is done.
func CompletedInCycle(snapshot timekeeper.Snapshot) int {
	return snapshot.CurrentSessionIndex / 2
}

// ToggleLabel names the start/pause action for the current status.
func ToggleLabel(snapshot timekeeper.Snapshot) string {
	switch snapshot.Status {
	case timekeeper.StatusRunning:
		return "Pause"
	case timekeeper.StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}
