package store

import "time"

// StudySession is one finalized timer session's minute report.
type StudySession struct {
	ID           int64
	Date         string // calendar-day string
	Subject      string
	FocusMinutes int
	BreakMinutes int
	CreatedAt    time.Time
}

type Setting struct {
	Key   string
	Value string
}

// DailyStudy aggregates study minutes for one calendar day.
type DailyStudy struct {
	Date         string
	FocusMinutes int
	BreakMinutes int
	SessionCount int
}
