package clock

import (
	"testing"
	"time"
)

func TestFixedAdvance(t *testing.T) {
	clk := &Fixed{Current: time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)}

	if clk.Today() != "2025-03-10" {
		t.Fatalf("today = %q", clk.Today())
	}

	// Crossing midnight changes the calendar day.
	clk.Advance(time.Hour)
	if clk.Today() != "2025-03-11" {
		t.Fatalf("today after advance = %q", clk.Today())
	}
}

func TestFixedAdvanceDays(t *testing.T) {
	clk := &Fixed{Current: time.Date(2025, 2, 27, 12, 0, 0, 0, time.UTC)}

	clk.AdvanceDays(2)
	if clk.Today() != "2025-03-01" {
		t.Fatalf("today = %q", clk.Today())
	}
}

func TestSystemClock(t *testing.T) {
	clk := System{}
	if clk.Today() != clk.Now().Format(DayFormat) {
		t.Fatal("Today must derive from Now")
	}
}
