package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned when a status tag is not one of error, success
// or pending.
var ErrInvalidStatus = errors.New("invalid status")

// Status classifies a message. It only drives styling.
type Status int

const (
	Error Status = iota
	Success
	Pending
)

// String returns the tag as written to the log.
func (s Status) String() string {
	switch s {
	case Error:
		return "Error"
	case Success:
		return "Success"
	case Pending:
		return "Pending"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus matches value case-insensitively against the known tags.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(value) {
	case "error":
		return Error, nil
	case "success":
		return Success, nil
	case "pending":
		return Pending, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Set implements pflag.Value so a Status can be bound to a flag.
func (s *Status) Set(value string) error {
	parsed, err := ParseStatus(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Status) Type() string {
	return "status"
}

// MarshalJSON encodes the status tag.
func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case Error, Success, Pending:
		return json.Marshal(s.String())
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
}

// UnmarshalJSON decodes a status tag in any case.
func (s *Status) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}
	return s.Set(tag)
}
