package tailer

import (
	"slices"
	"time"

	"github.com/five82/feed/internal/message"
	"github.com/five82/feed/internal/render"
)

// Cycle is the outcome of one poll over the log contents.
type Cycle struct {
	// Frame is the visible window in display order: oldest first, newest last.
	Frame []string
	// Visible holds the messages behind Frame, newest first.
	Visible []message.Message
	// Parsed holds every well-formed message in the log, newest first.
	Parsed []message.Message
	// Redraw is set when Frame differs from the previously drawn frame.
	Redraw bool
	// Skipped counts malformed lines; Err is the parse error of the newest one.
	Skipped int
	Err     error
}

// State carries what a poll needs from the previous one. The zero value has
// drawn nothing yet.
type State struct {
	frame   []string
	drawn   bool
	skipped int
}

// Frame returns the last frame computed.
func (s State) Frame() []string {
	return slices.Clone(s.frame)
}

// Skipped returns the malformed line count of the last poll.
func (s State) Skipped() int {
	return s.skipped
}

// Poll rebuilds the visible window from the full log contents. lines are in
// file order; the newest n well-formed records are shown. Poll has no side
// effects: the returned State replaces s.
func (s State) Poll(lines []string, r *render.Renderer, n int, now time.Time) (State, Cycle) {
	var cycle Cycle
	for i := len(lines) - 1; i >= 0; i-- {
		msg, err := message.Unmarshal([]byte(lines[i]))
		if err != nil {
			if cycle.Err == nil {
				cycle.Err = err
			}
			cycle.Skipped++
			continue
		}
		cycle.Parsed = append(cycle.Parsed, msg)
		if len(cycle.Visible) < n {
			cycle.Visible = append(cycle.Visible, msg)
		}
	}

	cycle.Frame = make([]string, len(cycle.Visible))
	for i, msg := range cycle.Visible {
		cycle.Frame[len(cycle.Visible)-1-i] = r.Render(msg, now)
	}

	cycle.Redraw = !s.drawn || !slices.Equal(s.frame, cycle.Frame)
	next := State{frame: cycle.Frame, drawn: true, skipped: cycle.Skipped}
	return next, cycle
}
