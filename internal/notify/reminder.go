package notify

import (
	"time"

	"github.com/ozdmrel/studyquest/internal/clock"
)

// DefaultReminderInterval is how often the periodic reminder check fires.
const DefaultReminderInterval = 30 * time.Minute

// Reminder nudges the user to study. The host drives it from its periodic
// tick; invocations never overlap.
type Reminder struct {
	svc      *Service
	clk      clock.Clock
	interval time.Duration
	lastSent time.Time
}

func NewReminder(svc *Service, clk clock.Clock, interval time.Duration) *Reminder {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &Reminder{svc: svc, clk: clk, interval: interval}
}

// MaybeRemind sends a study nudge unless one went out within the
// interval, the user already studied today, or permission is not granted.
// It reports whether a reminder was dispatched.
func (r *Reminder) MaybeRemind(studiedToday bool) bool {
	if studiedToday || r.svc.Permission() != PermissionGranted {
		return false
	}
	now := r.clk.Now()
	if !r.lastSent.IsZero() && now.Sub(r.lastSent) < r.interval {
		return false
	}
	r.lastSent = now
	r.svc.Send("Time to study", "You haven't logged a focus session today.")
	return true
}
