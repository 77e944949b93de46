// Package clock supplies the current time and calendar day to the rest of
// the app. Every "same day / different day" decision goes through Today()
// so tests can roll the calendar without touching the system clock.
package clock

import "time"

// DayFormat is the calendar-day string layout used everywhere.
const DayFormat = "2006-01-02"

// Clock provides the current instant and the local calendar day.
type Clock interface {
	Now() time.Time
	Today() string
}

// System is the wall-clock implementation.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() string { return time.Now().Format(DayFormat) }

// Fixed is a settable clock for tests. The zero value reports the zero time.
type Fixed struct {
	Current time.Time
}

func (f *Fixed) Now() time.Time { return f.Current }

func (f *Fixed) Today() string { return f.Current.Format(DayFormat) }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.Current = f.Current.Add(d) }

// AdvanceDays moves the fixed clock forward by whole calendar days.
func (f *Fixed) AdvanceDays(n int) { f.Current = f.Current.AddDate(0, 0, n) }
