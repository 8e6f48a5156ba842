package tailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/feed/internal/history"
	"github.com/five82/feed/internal/logtail"
	"github.com/five82/feed/internal/render"
)

const (
	DefaultLines   = 10
	DefaultRefresh = 100 * time.Millisecond

	// clearScreen erases the display and homes the cursor.
	clearScreen = "\x1b[2J\x1b[1;1H"
)

// Options configure a Tailer. Zero values use the defaults.
type Options struct {
	Lines       int
	Refresh     time.Duration
	HistorySize int
}

func (o Options) withDefaults() Options {
	if o.Lines <= 0 {
		o.Lines = DefaultLines
	}
	if o.Refresh <= 0 {
		o.Refresh = DefaultRefresh
	}
	if o.HistorySize <= 0 {
		o.HistorySize = history.DefaultCapacity
	}
	return o
}

// Tailer re-reads a feed log on a fixed interval and redraws its newest
// entries when they change.
type Tailer struct {
	path     string
	opts     Options
	renderer *render.Renderer
	out      io.Writer
	logger   zerolog.Logger
	history  *history.Ranked
	state    State
	now      func() time.Time
}

// New builds a Tailer for the log at path. Frames are written to out.
func New(path string, opts Options, r *render.Renderer, out io.Writer, logger zerolog.Logger) *Tailer {
	opts = opts.withDefaults()
	if r == nil {
		r = render.New()
	}
	if out == nil {
		out = io.Discard
	}
	return &Tailer{
		path:     path,
		opts:     opts,
		renderer: r,
		out:      out,
		logger:   logger.With().Str("component", "tailer").Str("path", path).Logger(),
		history:  history.New(opts.HistorySize),
		now:      time.Now,
	}
}

// History returns the messages seen during this run.
func (t *Tailer) History() *history.Ranked {
	return t.history
}

// State returns the state after the last step.
func (t *Tailer) State() State {
	return t.state
}

// Step performs one poll: read, parse, record history and redraw on change.
// Only read and write failures are returned.
func (t *Tailer) Step() (Cycle, error) {
	lines, err := logtail.ReadLines(t.path)
	if err != nil {
		return Cycle{}, err
	}

	prevSkipped := t.state.skipped
	next, cycle := t.state.Poll(lines, t.renderer, t.opts.Lines, t.now())
	for _, msg := range cycle.Parsed {
		t.history.Push(msg)
	}
	if cycle.Skipped != prevSkipped {
		event := t.logger.Warn().Int("skipped", cycle.Skipped)
		if cycle.Err != nil {
			event = event.Err(cycle.Err)
		}
		event.Msg("malformed log lines skipped")
	}

	if cycle.Redraw {
		if err := t.draw(cycle.Frame); err != nil {
			return cycle, err
		}
		t.logger.Debug().Int("visible", len(cycle.Frame)).Int("seen", t.history.Len()).Msg("frame redrawn")
	}
	t.state = next
	return cycle, nil
}

func (t *Tailer) draw(frame []string) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	for _, line := range frame {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Listen polls until ctx is cancelled or reading the log fails.
func (t *Tailer) Listen(ctx context.Context) error {
	t.logger.Info().Int("lines", t.opts.Lines).Dur("refresh", t.opts.Refresh).Msg("listening")

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if _, err := t.Step(); err != nil {
			return err
		}
		timer.Reset(t.opts.Refresh)
	}
}
