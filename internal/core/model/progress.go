package model

import "time"

// DateLayout is the calendar date format stored with progress.
const DateLayout = "2006-01-02"

// Progress is the persisted position within today's cycle.
type Progress struct {
	CurrentSessionIndex int    `json:"currentSessionIndex"`
	LastDate            string `json:"lastDate"`
}

// LocalDate formats the local calendar date of t.
func LocalDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// NewProgress returns progress for index on the local date of now.
func NewProgress(index int, now time.Time) Progress {
	return Progress{CurrentSessionIndex: index, LastDate: LocalDate(now)}
}

// IndexFor returns the stored index when the progress belongs to the local
// date of now, and 1 otherwise.
func (progress Progress) IndexFor(now time.Time) int {
	if progress.LastDate != LocalDate(now) || progress.CurrentSessionIndex < 1 {
		return 1
	}
	return progress.CurrentSessionIndex
}
