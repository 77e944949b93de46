// Package sound plays the segment-end signals. Playback is fire and
// forget; failures are swallowed.
package sound

import (
	"io"
	"os"
)

// Signal is the collaborator the timer engine fires at segment boundaries.
type Signal interface {
	PlayFocusEnd()
	PlayBreakEnd()
}

// Bell writes the terminal bell to its output.
type Bell struct {
	Out io.Writer
}

// NewBell returns a Bell writing to stdout.
func NewBell() *Bell {
	return &Bell{Out: os.Stdout}
}

func (b *Bell) PlayFocusEnd() { b.ring() }

func (b *Bell) PlayBreakEnd() { b.ring() }

func (b *Bell) ring() {
	if b.Out == nil {
		return
	}
	_, _ = b.Out.Write([]byte("\a"))
}

// Silent discards all signals.
type Silent struct{}

func (Silent) PlayFocusEnd() {}

func (Silent) PlayBreakEnd() {}
