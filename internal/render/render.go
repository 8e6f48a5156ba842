package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // display zone must resolve without system zoneinfo

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/feed/internal/message"
)

const (
	// TimeLayout is the timestamp format shown on every feed line.
	TimeLayout = "2006-01-02 15:04:05"

	DefaultBlink    = 1500 * time.Millisecond
	DefaultColor    = 5 * time.Minute
	DefaultLocation = "CET"
)

// Age is the freshness of a timestamp against a tolerance window.
type Age int

const (
	Recent Age = iota
	Old
)

func (a Age) String() string {
	if a == Recent {
		return "recent"
	}
	return "old"
}

// Classify reports Recent when now <= ts+tolerance.
func Classify(ts time.Time, tolerance time.Duration, now time.Time) Age {
	if now.After(ts.Add(tolerance)) {
		return Old
	}
	return Recent
}

// Tier is the display emphasis assigned to an entry by age.
type Tier int

const (
	TierPlain Tier = iota
	TierColor
	TierBlink
)

func (t Tier) String() string {
	switch t {
	case TierBlink:
		return "blink"
	case TierColor:
		return "color"
	default:
		return "plain"
	}
}

// TierOf classifies against the blink window first, then the color window.
func TierOf(ts time.Time, blink, color time.Duration, now time.Time) Tier {
	if Classify(ts, blink, now) == Recent {
		return TierBlink
	}
	if Classify(ts, color, now) == Recent {
		return TierColor
	}
	return TierPlain
}

// Renderer turns loggable entries into display lines.
type Renderer struct {
	blink    time.Duration
	color    time.Duration
	location *time.Location
	out      io.Writer
	profile  *termenv.Profile
	lg       *lipgloss.Renderer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBlink sets the blink tier window. Non-positive values keep the default.
func WithBlink(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.blink = d
		}
	}
}

// WithColor sets the color tier window. Non-positive values keep the default.
func WithColor(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.color = d
		}
	}
}

// WithLocation sets the display timezone.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithOutput detects the color profile from w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}

// WithColorProfile pins the color profile regardless of the output.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = &p
	}
}

// New builds a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		blink:    DefaultBlink,
		color:    DefaultColor,
		location: DisplayLocation(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lg = lipgloss.NewRenderer(r.out)
	if r.profile != nil {
		r.lg.SetColorProfile(*r.profile)
	}
	return r
}

// DisplayLocation returns the default display timezone, falling back to a
// fixed UTC+1 zone when the name cannot be resolved.
func DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultLocation)
	if err != nil {
		return time.FixedZone(DefaultLocation, 60*60)
	}
	return loc
}

// Lipgloss returns the lipgloss renderer bound to the output.
func (r *Renderer) Lipgloss() *lipgloss.Renderer { return r.lg }

// Blink returns the blink tier window.
func (r *Renderer) Blink() time.Duration { return r.blink }

// Color returns the color tier window.
func (r *Renderer) Color() time.Duration { return r.color }

// Tier assigns l to a display tier at now.
func (r *Renderer) Tier(l message.Loggable, now time.Time) Tier {
	return TierOf(l.Time(), r.blink, r.color, now)
}

// Plain formats l as "[timestamp] text" without styling. Trailing line
// breaks captured from stdin are dropped so the result stays one line.
func (r *Renderer) Plain(l message.Loggable) string {
	ts := l.Time().In(r.location).Format(TimeLayout)
	return fmt.Sprintf("[%s] %s", ts, strings.TrimRight(l.Body(), "\r\n"))
}

// BlinkStyle is shared by every entry in the blink tier, whatever its status.
func (r *Renderer) BlinkStyle() lipgloss.Style {
	return r.lg.NewStyle().
		Blink(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("3"))
}

// Render styles the plain line according to the entry's tier at now.
func (r *Renderer) Render(l message.Loggable, now time.Time) string {
	line := r.Plain(l)
	switch r.Tier(l, now) {
	case TierBlink:
		return r.BlinkStyle().Render(line)
	case TierColor:
		return l.Style(r.lg).Render(line)
	default:
		return line
	}
}
