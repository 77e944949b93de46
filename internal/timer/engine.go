// Package timer runs the two-phase focus/break countdown with pause
// accounting and partial-segment math.
package timer

import (
	"time"

	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/sound"
)

// Mode is the current countdown phase.
type Mode int

const (
	ModeFocus Mode = iota
	ModeBreak
)

func (m Mode) String() string {
	if m == ModeBreak {
		return "break"
	}
	return "focus"
}

// Summary is the minute report produced by a finalize. BreakMinutes merges
// completed break segments with whole minutes spent paused; downstream
// deliberately does not distinguish rest from idle pause.
type Summary struct {
	FocusMinutes int
	BreakMinutes int
}

// Engine is the pausable focus/break countdown. It is created per timer
// session, mutated by the host's 1 Hz tick, and discarded after a
// finalize or dispose. It never persists itself.
type Engine struct {
	clk    clock.Clock
	signal sound.Signal

	focusMinutes int
	breakMinutes int

	mode    Mode
	running bool
	paused  bool

	remainingSeconds           int
	completedFocusSegments     int
	currentFocusElapsedSeconds int
	totalBreakMinutes          int
	totalPausedSeconds         int
	pauseStartedAt             time.Time
}

// New returns an idle engine presenting a full focus countdown.
func New(clk clock.Clock, signal sound.Signal, focusMinutes, breakMinutes int) *Engine {
	if signal == nil {
		signal = sound.Silent{}
	}
	return &Engine{
		clk:              clk,
		signal:           signal,
		focusMinutes:     focusMinutes,
		breakMinutes:     breakMinutes,
		mode:             ModeFocus,
		remainingSeconds: focusMinutes * 60,
	}
}

func (e *Engine) Mode() Mode    { return e.mode }
func (e *Engine) Running() bool { return e.running }
func (e *Engine) Paused() bool  { return e.paused }

func (e *Engine) RemainingSeconds() int           { return e.remainingSeconds }
func (e *Engine) CompletedFocusSegments() int     { return e.completedFocusSegments }
func (e *Engine) CurrentFocusElapsedSeconds() int { return e.currentFocusElapsedSeconds }
func (e *Engine) TotalBreakMinutes() int          { return e.totalBreakMinutes }
func (e *Engine) TotalPausedSeconds() int         { return e.totalPausedSeconds }
func (e *Engine) FocusMinutes() int               { return e.focusMinutes }
func (e *Engine) BreakMinutes() int               { return e.breakMinutes }

// Start begins (or resumes) the countdown. Starting a running engine is a
// no-op; the host owns the single tick driver per running transition.
func (e *Engine) Start() {
	if e.running {
		return
	}
	if e.paused {
		e.Resume()
		return
	}
	e.running = true
}

// Pause stops the countdown and opens a pause interval at the current
// wall clock. Pause duration is computed from wall-clock deltas rather
// than tick counts, so accounting stays correct if ticks are throttled
// while the app is backgrounded.
func (e *Engine) Pause() {
	if !e.running {
		return
	}
	e.running = false
	e.paused = true
	e.pauseStartedAt = e.clk.Now()
}

// Resume closes the open pause interval and restarts the countdown.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.totalPausedSeconds += int(e.clk.Now().Sub(e.pauseStartedAt).Seconds())
	e.pauseStartedAt = time.Time{}
	e.paused = false
	e.running = true
}

// Tick advances the countdown by one second. The host must only invoke it
// while the engine is running.
func (e *Engine) Tick() {
	if !e.running {
		panic("timer: Tick while not running")
	}
	e.remainingSeconds--
	if e.mode == ModeFocus {
		e.currentFocusElapsedSeconds++
	}
	if e.remainingSeconds > 0 {
		return
	}

	// Mode always flips at zero; the engine never stops itself.
	if e.mode == ModeFocus {
		e.completedFocusSegments++
		e.currentFocusElapsedSeconds = 0
		e.signal.PlayFocusEnd()
		e.mode = ModeBreak
		e.remainingSeconds = e.breakMinutes * 60
	} else {
		e.totalBreakMinutes += e.breakMinutes
		e.signal.PlayBreakEnd()
		e.mode = ModeFocus
		e.remainingSeconds = e.focusMinutes * 60
	}
}

// ResetCurrentSegment restarts the in-progress segment's countdown at the
// configured length for the current mode. Counters are untouched.
func (e *Engine) ResetCurrentSegment() {
	if e.mode == ModeFocus {
		e.remainingSeconds = e.focusMinutes * 60
	} else {
		e.remainingSeconds = e.breakMinutes * 60
	}
}

// SetLengths applies new focus/break lengths in minutes. While idle or
// paused the visible countdown snaps to the new length for the current
// mode; while running the in-flight segment keeps its remaining time and
// the new lengths take effect at the next segment transition.
func (e *Engine) SetLengths(focusMinutes, breakMinutes int) {
	if focusMinutes > 0 {
		e.focusMinutes = focusMinutes
	}
	if breakMinutes > 0 {
		e.breakMinutes = breakMinutes
	}
	if !e.running {
		e.ResetCurrentSegment()
	}
}

// FinalizeComplete commits everything, including the in-progress focus
// segment, and reports the session's minutes. An open pause interval is
// closed at call time and folded into the break bucket.
func (e *Engine) FinalizeComplete() Summary {
	effectivePaused := e.totalPausedSeconds
	if e.paused {
		effectivePaused += int(e.clk.Now().Sub(e.pauseStartedAt).Seconds())
	}
	return Summary{
		FocusMinutes: e.completedFocusSegments*e.focusMinutes + e.currentFocusElapsedSeconds/60,
		BreakMinutes: e.totalBreakMinutes + effectivePaused/60,
	}
}

// FinalizeSegmentsOnly commits whole completed focus segments and discards
// the partial one. Callers must suppress this path when no segment has
// completed.
func (e *Engine) FinalizeSegmentsOnly() Summary {
	if e.completedFocusSegments == 0 {
		panic("timer: FinalizeSegmentsOnly with zero completed segments")
	}
	return Summary{
		FocusMinutes: e.completedFocusSegments * e.focusMinutes,
		BreakMinutes: e.totalBreakMinutes + e.totalPausedSeconds/60,
	}
}

// Dispose is the teardown decision the host calls exactly once when its
// surface goes away: a session with at least one whole focus segment is
// committed as if by FinalizeComplete, anything less is discarded.
func (e *Engine) Dispose() (Summary, bool) {
	if e.completedFocusSegments == 0 {
		return Summary{}, false
	}
	return e.FinalizeComplete(), true
}
