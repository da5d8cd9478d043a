package timekeeper

import (
	"fmt"

	"focustimer/internal/core/model"
	"focustimer/internal/core/plan"
)

const (
	titleWork     = "Work Time!"
	titleBreak    = "Break Time!"
	titleComplete = "Cycle Complete"
)

func sessionMessage(index int, settings model.Settings) (string, string) {
	if plan.IsWork(index) {
		return titleWork, fmt.Sprintf("Starting work session %d of %d.",
			plan.WorkSessionNumber(index), settings.Intervals)
	}
	return titleBreak, fmt.Sprintf("Take a %d minute break.", settings.BreakDuration)
}

func completionMessage(settings model.Settings) (string, string) {
	return titleComplete, fmt.Sprintf("You finished all %d work sessions (%d minutes of focus). Time for a longer rest!",
		settings.Intervals, settings.Intervals*settings.WorkDuration)
}
