// Package plan describes the ordered sessions of a work/break cycle.
//
// A cycle holds 2*intervals sessions numbered from 1. Odd indices are work
// sessions and even indices are breaks, so the last session of a cycle is
// always a break.
package plan

import "focustimer/internal/core/model"

// Kind describes a single session.
type Kind struct {
	IsWork          bool
	DurationSeconds int
}

// IsWork reports whether index is a work session.
func IsWork(index int) bool {
	return index%2 == 1
}

// SessionKind returns the type and length of the session at index.
func SessionKind(index int, settings model.Settings) Kind {
	if IsWork(index) {
		return Kind{IsWork: true, DurationSeconds: settings.WorkDuration * 60}
	}
	return Kind{IsWork: false, DurationSeconds: settings.BreakDuration * 60}
}

// TotalSessions returns the number of sessions in a full cycle.
func TotalSessions(settings model.Settings) int {
	return 2 * settings.Intervals
}

// IsLastSessionOfCycle reports whether finishing index completes the cycle.
// An index beyond the end of a cycle that shrank after a settings change is
// treated as last so the cycle still terminates.
func IsLastSessionOfCycle(index int, settings model.Settings) bool {
	return index >= TotalSessions(settings)
}

// WorkSessionNumber returns the 1-based work session number that index
// belongs to. A break shares the number of the work session before it.
func WorkSessionNumber(index int) int {
	return (index + 1) / 2
}

// ClampIndex forces index into the sessions of the current cycle.
func ClampIndex(index int, settings model.Settings) int {
	if index < 1 {
		return 1
	}
	if total := TotalSessions(settings); index > total {
		return total
	}
	return index
}
