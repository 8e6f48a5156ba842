package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ErrMalformed is returned when a log line is not a complete message record.
var ErrMalformed = errors.New("malformed message")

// Message is a single status entry in the feed log.
type Message struct {
	Timestamp time.Time
	Status    Status
	Text      string
}

// New stamps a message with the current UTC time.
func New(status Status, text string) Message {
	return Message{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Text:      text,
	}
}

// Compare orders messages newest first: it returns a negative value when a
// is more recent than b. Messages with the same timestamp compare equal.
func Compare(a, b Message) int {
	return b.Timestamp.Compare(a.Timestamp)
}

// Equal reports structural equality.
func Equal(a, b Message) bool {
	return a.Timestamp.Equal(b.Timestamp) && a.Status == b.Status && a.Text == b.Text
}

type record struct {
	Timestamp *time.Time `json:"timestamp"`
	Status    *Status    `json:"status"`
	Message   string     `json:"message"`
}

// Marshal encodes m as a single JSON line without the trailing newline.
func Marshal(m Message) ([]byte, error) {
	ts := m.Timestamp.UTC()
	status := m.Status
	data, err := json.Marshal(record{Timestamp: &ts, Status: &status, Message: m.Text})
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

// Unmarshal decodes one log line.
func Unmarshal(line []byte) (Message, error) {
	var raw record
	if err := json.Unmarshal(line, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw.Timestamp == nil {
		return Message{}, fmt.Errorf("%w: missing timestamp", ErrMalformed)
	}
	if raw.Status == nil {
		return Message{}, fmt.Errorf("%w: missing status", ErrMalformed)
	}
	return Message{
		Timestamp: raw.Timestamp.UTC(),
		Status:    *raw.Status,
		Text:      raw.Message,
	}, nil
}

// MarshalJSON lets a Message be embedded in other JSON payloads.
func (m Message) MarshalJSON() ([]byte, error) {
	return Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Message) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// Loggable is anything the renderer can place on a feed line.
type Loggable interface {
	Time() time.Time
	Body() string
	Style(r *lipgloss.Renderer) lipgloss.Style
}

var _ Loggable = Message{}

// Time implements Loggable.
func (m Message) Time() time.Time { return m.Timestamp }

// Body implements Loggable.
func (m Message) Body() string { return m.Text }

// Style returns the status color used for moderately recent entries.
func (m Message) Style(r *lipgloss.Renderer) lipgloss.Style {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	switch m.Status {
	case Error:
		return r.NewStyle().Foreground(lipgloss.Color("1"))
	case Success:
		return r.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return r.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("3"))
	}
}
